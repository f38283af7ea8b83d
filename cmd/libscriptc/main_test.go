package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.lsc")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunEmitTokensSucceedsOnValidSource(t *testing.T) {
	path := writeTempSource(t, "int a = 1;")
	if code := runEmitTokens(path); code != 0 {
		t.Errorf("runEmitTokens() = %d, want 0", code)
	}
}

func TestRunEmitASTSucceedsOnValidSource(t *testing.T) {
	path := writeTempSource(t, "int a = 1;")
	if code := runEmitAST(path); code != 0 {
		t.Errorf("runEmitAST() = %d, want 0", code)
	}
}

func TestRunEmitASTReportsSyntaxError(t *testing.T) {
	path := writeTempSource(t, "int a = ;")
	if code := runEmitAST(path); code == 0 {
		t.Error("runEmitAST() = 0, want non-zero on a syntax error")
	}
}

func TestRunEmitCheckedSucceedsOnWellTypedSource(t *testing.T) {
	path := writeTempSource(t, "int a = 1 + 2;")
	if code := runEmitChecked(path); code != 0 {
		t.Errorf("runEmitChecked() = %d, want 0", code)
	}
}

func TestRunEmitCheckedReportsTypeError(t *testing.T) {
	path := writeTempSource(t, "class A {}; void f() { A a = 1; }")
	if code := runEmitChecked(path); code == 0 {
		t.Error("runEmitChecked() = 0, want non-zero when assigning an int to a class-typed variable")
	}
}

func TestRunEmitTokensReportsMissingFile(t *testing.T) {
	if code := runEmitTokens(filepath.Join(t.TempDir(), "does-not-exist.lsc")); code == 0 {
		t.Error("runEmitTokens() = 0, want non-zero for a missing file")
	}
}
