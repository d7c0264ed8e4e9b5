package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campdir/campdir-api/internal/apperr"
)

func TestStatusForKind(t *testing.T) {
	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindValidation, http.StatusBadRequest},
		{apperr.KindDuplicate, http.StatusBadRequest},
		{apperr.KindInvalidToken, http.StatusBadRequest},
		{apperr.KindAuth, http.StatusUnauthorized},
		{apperr.KindBadID, http.StatusNotFound},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindServer, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForKind(tc.kind); got != tc.want {
			t.Errorf("statusForKind(%v) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("writeError() status = %d, want 500", rec.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Success {
		t.Error("writeError() success = true, want false")
	}
	if body.Error != "Server Error" {
		t.Errorf("writeError() error = %q, want generic message", body.Error)
	}
}

func TestWriteErrorTaggedKind(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperr.New(apperr.KindNotFound, "No bootcamp with the id abc"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("writeError() status = %d, want 404", rec.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error != "No bootcamp with the id abc" {
		t.Errorf("writeError() error = %q", body.Error)
	}
}
