package slisp

import "testing"

func TestRunArithmetic(t *testing.T) {
	in := New()
	defer in.Close()

	out, err := in.Run("(+ 1 2 3)")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if out != "6" {
		t.Fatalf("Run = %s, want 6", out)
	}
}

func TestRunPersistsDefinitionsAcrossCalls(t *testing.T) {
	in := New()
	defer in.Close()

	if _, err := in.Run("(define x 10)"); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out, err := in.Run("(* x 2)")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if out != "20" {
		t.Fatalf("Run = %s, want 20", out)
	}
}

func TestRunSyntaxError(t *testing.T) {
	in := New()
	defer in.Close()

	if _, err := in.Run("("); err == nil {
		t.Fatalf("expected syntax error for unclosed list")
	}
}

func TestRunRuntimeErrorDoesNotCorruptSubsequentCalls(t *testing.T) {
	in := New()
	defer in.Close()

	if _, err := in.Run("(+ 1 'a)"); err == nil {
		t.Fatalf("expected runtime error adding a number and a symbol")
	}

	out, err := in.Run("(+ 1 1)")
	if err != nil {
		t.Fatalf("Run returned error after a prior failure: %v", err)
	}

	if out != "2" {
		t.Fatalf("Run = %s, want 2", out)
	}
}

func TestRunRejectsMultipleExpressions(t *testing.T) {
	in := New()
	defer in.Close()

	if _, err := in.Run("1 2"); err == nil {
		t.Fatalf("expected syntax error for more than one expression")
	}
}
