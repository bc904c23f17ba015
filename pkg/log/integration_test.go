package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/dishcision/prepkit/pkg/errors"
)

func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationTransform)
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", ErrAttrKey, fmt.Errorf("test error"), ErrorCodeKey, ErrorInvalidInput)

	require.NotEmpty(t, buffer.String())

	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), "missing %q", msg)
	}

	assert.True(t, testLogger.ContainsField("key1", "value1"))
	// JSON numbers decode as float64
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "test error"))
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "StandardScaler",
		ComponentKey, "preprocessing",
	)
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "StandardScaler"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "preprocessing"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

func TestShapeAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	testLogger.Info("step finished",
		OperationKey, OperationTransform,
		PhaseKey, PhasePreprocessing,
		StepNameKey, "minmax",
		SamplesKey, 1000,
		FeaturesKey, 10,
	)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	expected := map[string]interface{}{
		OperationKey: OperationTransform,
		PhaseKey:     PhasePreprocessing,
		StepNameKey:  "minmax",
		SamplesKey:   1000.0,
		FeaturesKey:  10.0,
	}
	for key, want := range expected {
		assert.Equal(t, want, entries[0][key], "field %s", key)
	}
}

func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	SetProvider(provider)
	defer SetProvider(newSlogProvider())

	GetLogger().Info("provider test message")
	GetLoggerWithName("pipeline").Info("named logger message")

	out := buffer.String()
	assert.Contains(t, out, "provider test message")
	assert.Contains(t, out, "named logger message")
	assert.True(t, provider.Logger().ContainsField(ComponentKey, "pipeline"))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "info"))
	defer SetProvider(newSlogProvider())

	logger := GetLoggerWithName("preprocessing")
	logger.Debug("hidden")
	logger.Error("visible", ErrAttrKey, perrors.NewValueError("Normalize", "zero range"))

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	assert.NotContains(t, line, "hidden")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "ERROR", entry["severity"])
	assert.Equal(t, "preprocessing", entry[ComponentKey])
	assert.NotEmpty(t, entry[StacktraceAttrKey])
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, SetupLogger(&buf, "verbose"))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	provider := NewZerologProvider(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger := provider.GetLoggerWithName("report")
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))

	logger.Debug("dropped")
	logger.With(StepNameKey, "poly").Info("kept", FeaturesKey, 6)

	out := buf.String()
	assert.NotContains(t, out, "dropped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "report", entry[ComponentKey])
	assert.Equal(t, "poly", entry[StepNameKey])
	assert.Equal(t, 6.0, entry[FeaturesKey])

	provider.SetLevel(LevelError)
	assert.False(t, provider.GetLogger().Enabled(context.Background(), LevelWarn))
}

func TestRouteWarningsToZerolog(t *testing.T) {
	var buf bytes.Buffer
	RouteWarningsToZerolog(zerolog.New(&buf))
	defer perrors.SetZerologWarnFunc(nil)

	perrors.Warn(perrors.NewDegenerateWarning("MinMaxScale", 1, 0, "zero range"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "DegenerateWarning", entry["type"])
	assert.Equal(t, "MinMaxScale", entry["operation"])
	assert.Equal(t, 1.0, entry["column"])
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	const goroutines, perGoroutine = 4, 25
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			l := testLogger.With("goroutine_id", id)
			for j := 0; j < perGoroutine; j++ {
				l.Info(fmt.Sprintf("goroutine %d message %d", id, j), "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, goroutines*perGoroutine)
}

func BenchmarkLogging(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testLogger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationTransform,
			SamplesKey, 1000,
		)
	}
}
