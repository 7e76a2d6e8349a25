package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	newWithWriter(EnvProd, &buf).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("prod logger should drop debug, got %q", buf.String())
	}
	newWithWriter(EnvDev, &buf).Debug("shown")
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("dev logger should emit JSON debug, got %q", buf.String())
	}
	buf.Reset()
	newWithWriter(EnvLocal, &buf).Debug("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Errorf("local logger should emit text, got %q", buf.String())
	}
}
