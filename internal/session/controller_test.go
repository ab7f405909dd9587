package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ppiankov/factview/internal/evaluate"
	"github.com/ppiankov/factview/internal/model"
)

// fakeEvaluator records calls and returns canned outcomes per text
type fakeEvaluator struct {
	mu       sync.Mutex
	calls    []string
	verdicts map[string]*model.Verdict
	err      error
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, text string) (*model.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.verdicts[text], nil
}

func (f *fakeEvaluator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func meaninglessVerdict() *model.Verdict {
	return &model.Verdict{OverallFactuality: model.FactualityTrue}
}

func jupiterVerdict() *model.Verdict {
	return &model.Verdict{
		DetectedClaims:     []string{"Jupiter is a planet"},
		EvidenceCount:      3,
		SupportedClaims:    1,
		OverallFactuality:  model.FactualityTrue,
		OverallCredibility: 1,
		DetailedClaims:     []model.DetailedClaim{{ID: 1, Claim: "Jupiter is a planet", FactualityStatus: model.FactualityTrue}},
	}
}

func TestController_StartsIdle(t *testing.T) {
	c := NewController(&fakeEvaluator{}, nil)
	if c.State().Kind() != KindIdle {
		t.Errorf("expected idle, got %s", c.State().Kind())
	}
}

func TestController_ValidationErrorNoCall(t *testing.T) {
	eval := &fakeEvaluator{}
	c := NewController(eval, nil)

	_, err := c.Submit("ab")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.Message != "Text must be at least 3 characters" {
		t.Errorf("unexpected message %q", vErr.Message)
	}
	if c.State().Kind() != KindIdle {
		t.Errorf("expected no transition, got %s", c.State().Kind())
	}
	if eval.callCount() != 0 {
		t.Errorf("expected no network call, got %d", eval.callCount())
	}
	if snap := c.Snapshot(); snap.Validation == nil {
		t.Error("expected validation cell to be set")
	}
}

func TestController_ValidationKeepsPreviousResult(t *testing.T) {
	eval := &fakeEvaluator{verdicts: map[string]*model.Verdict{"Jupiter is a planet": jupiterVerdict()}}
	c := NewController(eval, nil)

	if _, err := c.SubmitAndWait(context.Background(), "Jupiter is a planet"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := c.Submit("  "); err == nil {
		t.Fatal("expected validation error")
	}
	if c.State().Kind() != KindSucceeded {
		t.Errorf("expected previous result to remain, got %s", c.State().Kind())
	}

	// accepted submission clears the validation cell
	if _, err := c.Submit("Jupiter is a planet"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if c.Snapshot().Validation != nil {
		t.Error("expected validation cell cleared")
	}
}

func TestController_ResolveClearsValidation(t *testing.T) {
	eval := &fakeEvaluator{verdicts: map[string]*model.Verdict{"Jupiter is a planet": jupiterVerdict()}}
	c := NewController(eval, nil)

	ticket, err := c.Submit("Jupiter is a planet")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// an invalid edit while the request is in flight
	if _, err := c.Submit("hi"); err == nil {
		t.Fatal("expected validation error")
	}
	if c.Snapshot().Validation == nil {
		t.Fatal("expected validation cell set")
	}

	if !c.Resolve(ticket, c.Execute(context.Background(), ticket)) {
		t.Fatal("expected outcome applied")
	}
	snap := c.Snapshot()
	if snap.Validation != nil {
		t.Errorf("validation cell survived resolution: %+v", snap.Validation)
	}
	if snap.State.Kind() != KindSucceeded {
		t.Errorf("expected succeeded, got %s", snap.State.Kind())
	}
}

func TestController_NonVerdictBodyFails(t *testing.T) {
	for _, body := range []string{`{}`, `{"detail": "Error evaluating response"}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, body)
		}))

		cfg := model.DefaultConfig()
		cfg.API.BaseURL = server.URL
		c := NewController(evaluate.NewClient(cfg, nil), nil)

		state, err := c.SubmitAndWait(context.Background(), "Jupiter is a planet")
		server.Close()
		if err != nil {
			t.Fatalf("%s: submit: %v", body, err)
		}
		failed, ok := state.(Failed)
		if !ok {
			t.Errorf("%s: expected failed, got %s", body, state.Kind())
			continue
		}
		if failed.Message != evaluate.GenericFailureMessage {
			t.Errorf("%s: message = %q", body, failed.Message)
		}
	}
}

func TestController_SubmitTransitions(t *testing.T) {
	eval := &fakeEvaluator{verdicts: map[string]*model.Verdict{"Jupiter is a planet": jupiterVerdict()}}
	c := NewController(eval, nil)

	ticket, err := c.Submit("Jupiter is a planet")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	submitting, ok := c.State().(Submitting)
	if !ok {
		t.Fatalf("expected Submitting, got %T", c.State())
	}
	if submitting.Seq != ticket.Seq {
		t.Errorf("expected seq %d, got %d", ticket.Seq, submitting.Seq)
	}
	if ticket.Request.Verifier != model.Verifier {
		t.Errorf("ticket missing pipeline stages: %+v", ticket.Request)
	}

	if !c.Resolve(ticket, c.Execute(context.Background(), ticket)) {
		t.Fatal("expected outcome to be applied")
	}
	succeeded, ok := c.State().(Succeeded)
	if !ok {
		t.Fatalf("expected Succeeded, got %T", c.State())
	}
	if succeeded.Verdict.SupportedClaims != 1 {
		t.Errorf("unexpected verdict %+v", succeeded.Verdict)
	}
	if eval.callCount() != 1 {
		t.Errorf("expected exactly one call, got %d", eval.callCount())
	}
}

func TestController_Failure(t *testing.T) {
	c := NewController(&fakeEvaluator{err: &evaluate.StatusError{Code: 500}}, nil)

	state, err := c.SubmitAndWait(context.Background(), "Jupiter is a planet")
	if err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	failed, ok := state.(Failed)
	if !ok {
		t.Fatalf("expected Failed, got %T", state)
	}
	if failed.Message != "API error: 500" {
		t.Errorf("unexpected message %q", failed.Message)
	}
}

func TestController_RecoversFromFailure(t *testing.T) {
	eval := &fakeEvaluator{err: errors.New("connection refused")}
	c := NewController(eval, nil)
	_, _ = c.SubmitAndWait(context.Background(), "Jupiter is a planet")
	if c.State().Kind() != KindFailed {
		t.Fatalf("expected failed, got %s", c.State().Kind())
	}

	eval.err = nil
	eval.verdicts = map[string]*model.Verdict{"Jupiter is a planet": jupiterVerdict()}
	state, _ := c.SubmitAndWait(context.Background(), "Jupiter is a planet")
	if state.Kind() != KindSucceeded {
		t.Errorf("expected succeeded after resubmission, got %s", state.Kind())
	}
}

func TestController_StaleResponseIgnored(t *testing.T) {
	first := jupiterVerdict()
	second := jupiterVerdict()
	second.SupportedClaims = 2
	c := NewController(&fakeEvaluator{}, nil)

	slow, _ := c.Submit("first submission")
	fast, _ := c.Submit("second submission")

	if !c.Resolve(fast, Outcome{Verdict: second}) {
		t.Fatal("expected latest outcome to apply")
	}
	if c.Resolve(slow, Outcome{Verdict: first}) {
		t.Fatal("expected stale outcome to be dropped")
	}

	succeeded := c.State().(Succeeded)
	if succeeded.Verdict.SupportedClaims != 2 {
		t.Errorf("stale response overwrote newer result")
	}
	if c.Snapshot().Text != "second submission" {
		t.Errorf("unexpected text %q", c.Snapshot().Text)
	}
}

func TestController_StaleFailureIgnoredWhileSubmitting(t *testing.T) {
	c := NewController(&fakeEvaluator{}, nil)
	old, _ := c.Submit("first submission")
	_, _ = c.Submit("second submission")

	c.Resolve(old, Outcome{Err: errors.New("timeout")})
	if c.State().Kind() != KindSubmitting {
		t.Errorf("expected still submitting, got %s", c.State().Kind())
	}
}

func TestController_ConcurrentSubmissions(t *testing.T) {
	eval := &fakeEvaluator{verdicts: map[string]*model.Verdict{}}
	for i := 0; i < 20; i++ {
		eval.verdicts[fmt.Sprintf("text %d", i)] = jupiterVerdict()
	}
	c := NewController(eval, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = c.SubmitAndWait(context.Background(), fmt.Sprintf("text %d", i))
		}(i)
	}
	wg.Wait()

	if eval.callCount() != 20 {
		t.Errorf("expected 20 calls, got %d", eval.callCount())
	}
	if c.State().Kind() != KindSucceeded {
		t.Errorf("expected succeeded, got %s", c.State().Kind())
	}
}

func TestClassify_Meaningless(t *testing.T) {
	if got := Classify(meaninglessVerdict(), nil); got.Kind() != KindMeaningless {
		t.Fatalf("expected meaningless, got %s", got.Kind())
	}

	mutations := map[string]func(v *model.Verdict){
		"supported":       func(v *model.Verdict) { v.SupportedClaims = 1 },
		"conflicted":      func(v *model.Verdict) { v.ConflictedClaims = 1 },
		"controversial":   func(v *model.Verdict) { v.ControversialClaims = 1 },
		"unverified":      func(v *model.Verdict) { v.UnverifiedClaims = 1 },
		"evidence":        func(v *model.Verdict) { v.EvidenceCount = 1 },
		"credibility":     func(v *model.Verdict) { v.OverallCredibility = 0.1 },
		"detected claims": func(v *model.Verdict) { v.DetectedClaims = []string{"x"} },
		"detailed claims": func(v *model.Verdict) { v.DetailedClaims = []model.DetailedClaim{{ID: 1}} },
		"factuality":      func(v *model.Verdict) { v.OverallFactuality = model.FactualityFalse },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			v := meaninglessVerdict()
			mutate(v)
			if got := Classify(v, nil); got.Kind() != KindSucceeded {
				t.Errorf("expected succeeded after changing %s, got %s", name, got.Kind())
			}
		})
	}
}

func TestClassify_EmptySlicesCountAsAbsent(t *testing.T) {
	v := meaninglessVerdict()
	v.DetectedClaims = []string{}
	v.DetailedClaims = []model.DetailedClaim{}
	if !IsMeaningless(v) {
		t.Error("expected empty lists to be treated like absent lists")
	}
}

func TestClassify_Errors(t *testing.T) {
	malformed := Classify(nil, &evaluate.MalformedResponseError{Err: errors.New("bad json")})
	if f := malformed.(Failed); f.Message != evaluate.GenericFailureMessage {
		t.Errorf("expected generic message, got %q", f.Message)
	}

	transport := Classify(nil, &evaluate.TransportError{Err: errors.New("dial tcp: connection refused")})
	if f := transport.(Failed); f.Message != "dial tcp: connection refused" {
		t.Errorf("expected underlying error text, got %q", f.Message)
	}
}
