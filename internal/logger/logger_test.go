package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup_JSONFormat(t *testing.T) {
	Setup(Options{Level: "debug", Format: "json"})
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("formatter = %T, want *logrus.JSONFormatter", logrus.StandardLogger().Formatter)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logrus.GetLevel())
	}
}

func TestSetup_DefaultsToTextAndInfo(t *testing.T) {
	Setup(Options{Level: "nonsense"})
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		t.Fatalf("formatter = %T, want *logrus.TextFormatter", logrus.StandardLogger().Formatter)
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logrus.GetLevel())
	}
}
