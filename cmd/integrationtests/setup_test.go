package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auction"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/auth"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/bidding"
	model "github.com/theavnishkumar/online-auction-system-sub000/internal/models"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/realtime"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/repository"
	"github.com/theavnishkumar/online-auction-system-sub000/internal/server"
)

const testSecret = "integration-test-secret"

// testStack bundles everything an integration test interacts with
type testStack struct {
	router   *gin.Engine
	store    *repository.MemoryStore
	verifier *auth.Verifier
}

// SetupTestStack wires the full application with in-memory storage
func SetupTestStack() *testStack {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	verifier := auth.NewVerifier(testSecret)
	registry := realtime.NewRoomRegistry()
	hub := realtime.NewHub(registry, 32)
	biddingSvc := bidding.NewService(store, hub, bidding.DefaultBounds)
	auctionSvc := auction.NewService(store)
	ws := realtime.NewWSHandler(verifier, hub, registry, biddingSvc, 30*time.Second, 10*time.Second)

	router := server.SetupRouter(server.Deps{
		Verifier:   verifier,
		AuctionSvc: auctionSvc,
		BiddingSvc: biddingSvc,
		WS:         ws,
	})

	return &testStack{router: router, store: store, verifier: verifier}
}

func idFor(userID, userName string) model.Identity {
	return model.Identity{UserID: userID, UserName: userName, Role: "user"}
}

// Token signs a credential for a test user
func (s *testStack) Token(t *testing.T, userID, userName string) string {
	t.Helper()
	token, err := s.verifier.Sign(idFor(userID, userName), time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
// An empty token leaves the request unauthenticated.
func (s *testStack) ExecuteRequest(t *testing.T, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the standard JSON envelope
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp
}
