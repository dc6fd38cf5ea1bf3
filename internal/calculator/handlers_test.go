package calculator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"architect-calculators/internal/observability"
	"architect-calculators/internal/testutil"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(opts))
	return r
}

func TestEvaluateEndpoints(t *testing.T) {
	router := newTestRouter(t, Options{})

	tests := []struct {
		path string
		body string
		want string
	}{
		{
			path: "/api/valueScore",
			body: `{"scale":5,"frequency":5,"manualComplexity":5}`,
			want: `{"success":true,"valueScore":5}`,
		},
		{
			path: "/api/pert",
			body: `{"optimistic":2,"mostLikely":4,"pessimistic":12}`,
			want: `{"expected":5,"sigma":1.67,"success":true,"unit":"days","upper95":8.33}`,
		},
		{
			path: "/api/risk",
			body: `{"probabilityPercent":50,"impact":1000}`,
			want: `{"exposure":500,"period":"/month","success":true}`,
		},
		{
			path: "/api/tco",
			body: `{"capEx":1000,"opExMonthly":100}`,
			want: `{"success":true,"tco":4600}`,
		},
		{
			path: "/api/budget",
			body: `{"baseBudget":1000,"knownReserve":200}`,
			want: `{"success":true,"totalBudget":1400,"unknownReserve":200}`,
		},
		{
			path: "/api/valueScore",
			body: `{"scale":5,"frequency":5,"manualComplexity":11}`,
			want: `{"error":"ManualComplexity must be between 1 and 10"}`,
		},
		{
			path: "/api/pert",
			body: `{"optimistic":10,"mostLikely":5,"pessimistic":20}`,
			want: `{"error":"Values must satisfy: Optimistic <= MostLikely <= Pessimistic"}`,
		},
		{
			path: "/api/risk",
			body: `[1,2,3]`,
			want: `{"error":"Missing required fields: probabilityPercent, impact"}`,
		},
		{
			path: "/api/tco",
			body: `null`,
			want: `{"error":"Missing required fields: capEx, opExMonthly"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.path+" "+tc.body, func(t *testing.T) {
			w := testutil.ExecuteRequest(testutil.PostJSON(tc.path, tc.body), router)

			testutil.CheckResponseCode(t, http.StatusOK, w.Code)
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected Content-Type application/json, got %q", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tc.want {
				t.Fatalf("expected body %s, got %s", tc.want, got)
			}
		})
	}
}

func TestEvaluateIsByteIdentical(t *testing.T) {
	router := newTestRouter(t, Options{})
	body := `{"baseBudget":1234.56,"knownReserve":78.9,"unknownPercent":12.5}`

	first := testutil.ExecuteRequest(testutil.PostJSON("/api/budget", body), router).Body.String()
	second := testutil.ExecuteRequest(testutil.PostJSON("/api/budget", body), router).Body.String()

	if first != second {
		t.Fatalf("expected identical bodies, got %q and %q", first, second)
	}
}

func TestEvaluateMalformedJSON(t *testing.T) {
	router := newTestRouter(t, Options{})

	for _, body := range []string{`{"scale":`, ``, `{"scale":5} trailing`} {
		t.Run(body, func(t *testing.T) {
			w := testutil.ExecuteRequest(testutil.PostJSON("/api/valueScore", body), router)

			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var payload map[string]any
			testutil.DecodeJSONBody(t, w.Body, &payload)
			msg, _ := payload["error"].(string)
			if !strings.HasPrefix(msg, "Invalid JSON: ") {
				t.Fatalf("expected Invalid JSON error, got %#v", payload)
			}
			if len(payload) != 1 {
				t.Fatalf("expected only the error field, got %#v", payload)
			}
		})
	}
}

func TestEvaluateStrictStatus(t *testing.T) {
	router := newTestRouter(t, Options{StrictStatus: true})

	w := testutil.ExecuteRequest(testutil.PostJSON("/api/risk", `{"probabilityPercent":150,"impact":1}`), router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)
	if payload["error"] != "Probability must be between 0 and 100" {
		t.Fatalf("unexpected payload %#v", payload)
	}

	w = testutil.ExecuteRequest(testutil.PostJSON("/api/risk", `{"probabilityPercent":15,"impact":100}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
}

func TestEvaluateBodyTooLarge(t *testing.T) {
	router := newTestRouter(t, Options{MaxBodyBytes: 16})

	w := testutil.ExecuteRequest(testutil.PostJSON("/api/tco", `{"capEx":1000,"opExMonthly":100}`), router)
	testutil.CheckResponseCode(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestEvaluateLogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t, Options{})

	req := testutil.PostJSON("/api/pert", `{"optimistic":-1,"mostLikely":1,"pessimistic":2}`)
	req = req.WithContext(observability.ContextWithRequestID(req.Context(), "req-9"))
	_ = testutil.ExecuteRequest(req, router)

	entries := logs.FilterMessage("calculation rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 rejection log, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["calculator"] != "pert" {
		t.Fatalf("expected calculator pert, got %#v", fields["calculator"])
	}
	if fields["kind"] != "range_violation" {
		t.Fatalf("expected kind range_violation, got %#v", fields["kind"])
	}
	if fields["request_id"] != "req-9" {
		t.Fatalf("expected request_id req-9, got %#v", fields["request_id"])
	}
}

func TestListCalculators(t *testing.T) {
	router := newTestRouter(t, Options{})

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/calculators", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp ListResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if len(resp.Calculators) != 5 {
		t.Fatalf("expected 5 calculators, got %d", len(resp.Calculators))
	}
	if resp.Calculators[1].Name != "pert" {
		t.Fatalf("expected pert second, got %q", resp.Calculators[1].Name)
	}
	if got := resp.Calculators[1].Fields[3]; got.Name != "unit" || got.Default != "days" || got.Required {
		t.Fatalf("unexpected unit field %#v", got)
	}
}
