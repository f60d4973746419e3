package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunSeedWithoutPosterFlag(t *testing.T) {
	err := runSeed(&cobra.Command{Use: "seed"}, nil)
	if err == nil || !strings.Contains(err.Error(), "poster") {
		t.Fatalf("expected an undefined flag error, got %v", err)
	}
}

func TestRunSeedRejectsBadPoster(t *testing.T) {
	cmd := &cobra.Command{Use: "seed"}
	cmd.Flags().String("poster", "", "")
	if err := cmd.Flags().Set("poster", "not-a-uuid"); err != nil {
		t.Fatal(err)
	}

	err := runSeed(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "--poster must be a user id") {
		t.Fatalf("expected a poster id error, got %v", err)
	}
}
