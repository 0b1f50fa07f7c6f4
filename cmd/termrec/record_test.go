package main

import "testing"

func TestRecordCmdRequiresExactlyOneOfOutputOrOutputDir(t *testing.T) {
	cmd := recordCmd()
	cmd.SetArgs([]string{"--", "echo", "hi"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when neither --output nor --output-dir is given")
	}
}

func TestRecordCmdRejectsBothOutputAndOutputDir(t *testing.T) {
	cmd := recordCmd()
	cmd.SetArgs([]string{
		"--output", "a.termrec",
		"--output-dir", "a-dir",
		"--", "echo", "hi",
	})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when both --output and --output-dir are given")
	}
}
