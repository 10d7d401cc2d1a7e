package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeFetch, cause, "list products")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause via errors.Is")
	}
	if !IsFetch(err) {
		t.Fatal("expected a fetch error")
	}
	if IsMissingProduct(err) {
		t.Fatal("fetch error should not read as missing product")
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeMissingProduct, "cart row 7 has no product")
	outer := fmt.Errorf("refreshing cart: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodeMissingProduct {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500 fallback, got %d", meta.HTTPStatus)
	}
}

func TestFetchErrorsAreRetryable(t *testing.T) {
	if !MetadataFor(CodeFetch).Retryable {
		t.Fatal("fetch errors must be retryable")
	}
	if MetadataFor(CodeMissingProduct).Retryable {
		t.Fatal("missing product is a data fault, not retryable")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeFetch, errors.New("dial tcp: timeout"), "refetch cart")
	d := Dump(err)
	if d.Code != CodeFetch {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
}
