package main

import (
	"bytes"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	grpcadapter "github.com/simaogato/wealthflow-growth/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-growth/internal/usecase/growth"
)

// execute runs the root command with the given stdin and arguments and returns stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSchedule_Interactive(t *testing.T) {
	out, err := execute(t, "0\nabc\n10\n-5\n1000\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Investment Calculator\n")
	assert.Contains(t, out, "This program calculates the future value of an investment and how long it takes to double.\n")
	assert.Contains(t, out, "It will take 8 years for an investment of $1,000.00 to double at an interest rate of 10%")
	assert.Contains(t, out, "   1     |      $1,000.00       |       $100.00        |      $1,100.00      ")
	assert.Contains(t, out, "   8     ")

	// the summary is printed only after both values were read
	assert.Less(t, strings.Index(out, "Enter the initial investment amount"), strings.Index(out, "It will take"))
}

func TestSchedule_Flags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "Default command",
			args:     []string{"--principal", "1000", "--rate", "1"},
			expected: []string{"It will take 70 years for an investment of $1,000.00 to double at an interest rate of 1%"},
		},
		{
			name:     "Schedule subcommand",
			args:     []string{"schedule", "--principal", "1000", "--rate", "100"},
			expected: []string{"It will take 1 years for an investment of $1,000.00 to double at an interest rate of 100%"},
		},
		{
			name:     "Other currency",
			args:     []string{"schedule", "--principal", "1000", "--rate", "10", "--currency", "GBP"},
			expected: []string{"£1,000.00", "£1,100.00"},
		},
		{
			name:     "Markdown",
			args:     []string{"--principal", "1000", "--rate", "10", "--format", "markdown", "--style", "notty"},
			expected: []string{"Yearly Growth Schedule", "$2,143.59"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			assert.NotContains(t, out, "Enter the")
		})
	}
}

func TestSchedule_UsageErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectedErr string
	}{
		{name: "Zero rate", args: []string{"--rate", "0", "--principal", "1000"}, expectedErr: "--rate"},
		{name: "Rate above maximum", args: []string{"--rate", "150", "--principal", "1000"}, expectedErr: "--rate"},
		{name: "Rate not a number", args: []string{"--rate", "ten", "--principal", "1000"}, expectedErr: "--rate"},
		{name: "Negative principal", args: []string{"--rate", "5", "--principal", "-1"}, expectedErr: "--principal"},
		{name: "Unknown format", args: []string{"--rate", "5", "--principal", "1", "--format", "csv"}, expectedErr: "unknown format"},
		{name: "Unknown currency", args: []string{"--rate", "5", "--principal", "1", "--currency", "XYZ"}, expectedErr: "unknown currency"},
		{name: "Unknown flag", args: []string{"--bogus"}, expectedErr: "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)

			var uerr usageError
			assert.ErrorAs(t, err, &uerr)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestSchedule_MaxRateFromEnvironment(t *testing.T) {
	t.Setenv("DOUBLING_MAX_RATE_PERCENT", "500")

	out, err := execute(t, "", "--rate", "150", "--principal", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "It will take 1 years for an investment of $1,000.00 to double at an interest rate of 150%")
}

func TestSchedule_EndOfInput(t *testing.T) {
	_, err := execute(t, "10\n")
	require.Error(t, err)

	var uerr usageError
	assert.NotErrorAs(t, err, &uerr)
	assert.Contains(t, err.Error(), "reading investment amount")
}

func TestSchedule_InvalidConfig(t *testing.T) {
	t.Setenv("DOUBLING_LOG_LEVEL", "loud")

	_, err := execute(t, "", "--rate", "5", "--principal", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestSchedule_Remote(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	grpcServer := grpcadapter.NewGRPCServer(grpcadapter.GeneratorFunc(growth.GenerateSchedule), zap.NewNop(), "remote-token", 100000)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	addr := lis.Addr().String()

	t.Run("Valid token", func(t *testing.T) {
		out, err := execute(t, "", "--principal", "1000", "--rate", "10", "--server", addr, "--token", "remote-token")
		require.NoError(t, err)
		assert.Contains(t, out, "It will take 8 years for an investment of $1,000.00 to double at an interest rate of 10%")
	})

	t.Run("Token from environment", func(t *testing.T) {
		t.Setenv("DOUBLING_API_TOKEN", "remote-token")
		out, err := execute(t, "", "--principal", "1000", "--rate", "1", "--server", addr)
		require.NoError(t, err)
		assert.Contains(t, out, "It will take 70 years")
	})

	t.Run("Rate below a tenth of a percent", func(t *testing.T) {
		out, err := execute(t, "", "--principal", "1000", "--rate", "0.05", "--server", addr, "--token", "remote-token")
		require.NoError(t, err)
		assert.Contains(t, out, "It will take 1387 years for an investment of $1,000.00 to double at an interest rate of 0.05%")
	})

	t.Run("Wrong token", func(t *testing.T) {
		_, err := execute(t, "", "--principal", "1000", "--rate", "10", "--server", addr, "--token", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
	})
}

func TestExecute_FlushesLoggerOnFailure(t *testing.T) {
	var logs bytes.Buffer
	// Nothing reaches logs until the buffer is synced
	ws := &zapcore.BufferedWriteSyncer{WS: zapcore.AddSync(&logs), Size: 1 << 16, FlushInterval: time.Hour}
	t.Cleanup(func() { _ = ws.Stop() })

	a := &app{logger: zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), ws, zapcore.DebugLevel))}
	cmd := a.rootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--rate", "0", "--principal", "1000"})

	err := a.execute(cmd)

	require.Error(t, err)
	assert.Contains(t, logs.String(), `"msg":"command failed"`)
	assert.Contains(t, logs.String(), "--rate")
}
