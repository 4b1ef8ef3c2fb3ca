package logging

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestObservedLoggerLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)

	logger.Debugw("debug line", "station", 0)
	logger.Info("info line")
	test.That(t, logs.Len(), test.ShouldEqual, 2)

	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warnf("warn %d", 1)
	logger.Errorw("error line", "key", "value")

	entries := logs.All()
	test.That(t, len(entries), test.ShouldEqual, 4)
	test.That(t, entries[0].Message, test.ShouldEqual, "debug line")
	test.That(t, entries[0].ContextMap()["station"], test.ShouldEqual, int64(0))
	test.That(t, entries[2].Message, test.ShouldEqual, "warn 1")
	test.That(t, entries[3].Level, test.ShouldEqual, zapcore.ErrorLevel)
}

func TestSubloggerName(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("lighthouse")
	subsub := sub.Sublogger("yaw")

	sub.Info("one")
	subsub.Info("two")

	entries := logs.All()
	test.That(t, len(entries), test.ShouldEqual, 2)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "lighthouse")
	test.That(t, entries[1].LoggerName, test.ShouldEqual, "lighthouse.yaw")

	// Levels are copied, not shared.
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
}

func TestLevelStrings(t *testing.T) {
	for _, lvl := range []Level{DEBUG, INFO, WARN, ERROR} {
		parsed, err := LevelFromString(lvl.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, lvl)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)

	var lvl Level
	test.That(t, json.Unmarshal([]byte(`"warning"`), &lvl), test.ShouldBeNil)
	test.That(t, lvl, test.ShouldEqual, WARN)

	out, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"error"`)
}

func TestReplaceGlobal(t *testing.T) {
	prev := Global()
	defer ReplaceGlobal(prev)

	logger, logs := NewObservedTestLogger(t)
	ReplaceGlobal(logger)
	test.That(t, Global(), test.ShouldEqual, logger)

	Global().Sublogger("replay").Infow("replaced", "frames", 3)
	entries := logs.All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "replay")
}
