package main

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texbridge/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
	port       int
}

const warningLog = "Warning:undefined:\\foo Undefined macro\n\tat Literal String; line 1 col 3\n"

// setupCLITestEnv writes a config pointing at port and isolates HOME.
func setupCLITestEnv(t *testing.T, port int, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TEXBRIDGE_PORT", "")
	t.Setenv("TEXBRIDGE_EXECUTABLE", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithPort(port)}, opts...)...)
	configPath := filepath.Join(base, "texbridge.toml")
	testsupport.WriteConfig(t, configPath, cfg)
	return &cliTestEnv{configPath: configPath, baseDir: base, port: port}
}

func runCLI(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd, cmdCtx := buildRootCommand()
	t.Cleanup(func() { _ = cmdCtx.close() })
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// startFakeDaemon serves conversions that report one positioned warning.
func startFakeDaemon(t *testing.T) *testsupport.FakeDaemon {
	t.Helper()
	return testsupport.NewFakeDaemon(t, testsupport.WithLog(warningLog))
}

func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
