package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	if got := Setup("warn", false).GetLevel(); got != logrus.WarnLevel {
		t.Fatalf("level = %s", got)
	}
	if got := Setup("warn", true).GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("debug level = %s", got)
	}
	if got := Setup("loud", false).GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("fallback level = %s", got)
	}
}
