package fecsched

import "testing"

func TestErrUnknownAlgorithmMessage(t *testing.T) {
	err := &ErrUnknownAlgorithm{Name: "bogus"}
	want := `fecsched: unknown algorithm name "bogus"`
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
