package config

import "testing"

func TestValidateRequiresInputFiles(t *testing.T) {
	c := &Config{OutputRoot: "out"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error with no input files")
	}
}

func TestValidateRequiresOutputRoot(t *testing.T) {
	c := &Config{InputFiles: []string{"config.go"}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error with no output root")
	}
}

func TestValidateChecksInputFilesExist(t *testing.T) {
	c := &Config{OutputRoot: "out", InputFiles: []string{"does-not-exist.cpp"}}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for a missing input file")
	}
}

func TestValidateAcceptsRealInputFile(t *testing.T) {
	c := &Config{OutputRoot: "out", InputFiles: []string{"config.go"}}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
