package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"gigboard/marketplace-service/internal/httpapi"
	"gigboard/marketplace-service/internal/model"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return body
}

func TestWriteServiceError_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &model.ValidationError{Msg: "budget is required"}, 400},
		{"unauthorized", model.ErrUnauthorized, 401},
		{"forbidden", model.ErrForbidden, 403},
		{"not found", model.ErrNotFound, 404},
		{"wrapped not found", errors.Join(errors.New("load job"), model.ErrNotFound), 404},
		{"unknown", errors.New("connection refused"), 500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpapi.WriteServiceError(rec, c.err)

			if rec.Code != c.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, c.wantStatus)
			}
			body := decode(t, rec)
			if body["success"] != false {
				t.Error("error envelope must carry success=false")
			}
			if body["error"] == nil || body["error"] == "" {
				t.Error("error envelope must carry an error message")
			}
		})
	}
}

func TestWriteServiceError_ValidationMessageSurfaces(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.WriteServiceError(rec, &model.ValidationError{Msg: "title is required"})

	body := decode(t, rec)
	if body["error"] != "title is required" {
		t.Errorf("error = %v, want the validation message verbatim", body["error"])
	}
}

func TestOK_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.OK(rec, "jobs", []string{})

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true {
		t.Error("envelope must carry success=true")
	}
	if _, ok := body["jobs"]; !ok {
		t.Error("envelope must carry the resource under its key")
	}
}

func TestMessage_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.Message(rec, "job deleted")

	body := decode(t, rec)
	if body["success"] != true || body["message"] != "job deleted" {
		t.Errorf("envelope = %v, want success=true message=%q", body, "job deleted")
	}
}
