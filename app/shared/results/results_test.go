package results

import (
	"errors"
	"testing"
)

func TestOperationResult(t *testing.T) {
	ok := SuccessResult[int, error](7)
	if !ok.IsSuccess() || ok.IsFailure() {
		t.Fatalf("expected success only, got %+v", ok)
	}
	if *ok.Success != 7 {
		t.Errorf("expected 7, got %d", *ok.Success)
	}

	failure := errors.New("boom")
	bad := FailureResult[int, error](failure)
	if bad.IsSuccess() || !bad.IsFailure() {
		t.Fatalf("expected failure only, got %+v", bad)
	}
	if !errors.Is(*bad.Failure, failure) {
		t.Errorf("expected wrapped failure, got %v", *bad.Failure)
	}

	var zero OperationResult[int, error]
	if zero.IsSuccess() || zero.IsFailure() {
		t.Errorf("zero result must be neither success nor failure")
	}
}
