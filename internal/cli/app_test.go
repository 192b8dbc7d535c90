package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentifyapp/rentify-client/internal/api"
	"github.com/rentifyapp/rentify-client/internal/devserver"
	errs "github.com/rentifyapp/rentify-client/internal/errors"
	"github.com/rentifyapp/rentify-client/internal/listings"
	"github.com/rentifyapp/rentify-client/internal/logger"
	"github.com/rentifyapp/rentify-client/internal/search"
	"github.com/rentifyapp/rentify-client/internal/session"
	"github.com/rentifyapp/rentify-client/internal/validation"
)

// testApp wires a full App against an in-process devserver backend.
type testApp struct {
	app *App
	out *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	backend := httptest.NewServer(devserver.NewServer(devserver.NewStore(slogger), slogger))
	t.Cleanup(backend.Close)

	return newTestAppAt(t, backend.URL)
}

func newTestAppAt(t *testing.T, baseURL string) *testApp {
	t.Helper()
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sess, err := session.Open("", slogger)
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	idx, err := search.New(slogger)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	client := api.New(baseURL, slogger)
	out := &bytes.Buffer{}
	app := New(Options{
		Client:     client,
		Session:    sess,
		Collection: listings.New(client, slogger),
		Search:     idx,
		Validator:  validation.New(),
		Logger:     logger.New(logger.Config{Writer: io.Discard, Format: "json"}),
		Out:        out,
	})
	return &testApp{app: app, out: out}
}

func (ta *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	ta.out.Reset()
	return ta.app.Run(context.Background(), args)
}

// signup creates an account and returns the new user ID.
func (ta *testApp) signup(t *testing.T, name, email string) string {
	t.Helper()
	require.NoError(t, ta.run(t, "signup", "-name", name, "-email", email, "-password", "hunter2hunter2"))
	m := regexp.MustCompile(`id (\S+)\)`).FindStringSubmatch(ta.out.String())
	require.NotNil(t, m, "signup output: %s", ta.out.String())
	return m[1]
}

func coverFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpegdata"), 0o644))
	return path
}

func (ta *testApp) createListing(t *testing.T, title string) string {
	t.Helper()
	err := ta.run(t, "create",
		"-title", title,
		"-body", "Well maintained",
		"-price", "18",
		"-interval", "daily",
		"-file", coverFile(t))
	require.NoError(t, err, "create output: %s", ta.out.String())
	m := regexp.MustCompile(`created listing (\S+)`).FindStringSubmatch(ta.out.String())
	require.NotNil(t, m)
	return m[1]
}

func TestRun_NoCommand(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Contains(t, ta.out.String(), "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t, "frobnicate")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "health"))
	assert.Contains(t, ta.out.String(), "is up")
}

func TestHealth_Unreachable(t *testing.T) {
	ta := newTestAppAt(t, "http://127.0.0.1:1")
	err := ta.run(t, "health")
	assert.ErrorIs(t, err, errs.ErrNetwork)
}

func TestSignupLogoutWhoami(t *testing.T) {
	ta := newTestApp(t)

	userID := ta.signup(t, "Dana", "dana@example.com")
	assert.NotEmpty(t, userID)

	require.NoError(t, ta.run(t, "whoami"))
	assert.Contains(t, ta.out.String(), "dana@example.com")

	require.NoError(t, ta.run(t, "logout"))
	require.NoError(t, ta.run(t, "whoami"))
	assert.Contains(t, ta.out.String(), "not logged in")
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t, "signup", "-name", "Dana", "-email", "dana@example.com", "-password", "short")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestLogin_BackfillsID(t *testing.T) {
	ta := newTestApp(t)
	userID := ta.signup(t, "Dana", "dana@example.com")
	require.NoError(t, ta.run(t, "logout"))

	require.NoError(t, ta.run(t, "login", userID))
	assert.Contains(t, ta.out.String(), "id "+userID)
}

func TestCreateRequiresLogin(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t, "create", "-title", "Ladder", "-body", "20ft", "-file", coverFile(t))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateAndBrowse(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	require.NoError(t, ta.run(t, "listings"))
	assert.Contains(t, ta.out.String(), "Pressure washer")
	assert.NotContains(t, ta.out.String(), "demo data")

	require.NoError(t, ta.run(t, "listing", listingID))
	assert.Contains(t, ta.out.String(), "Well maintained")
	assert.Contains(t, ta.out.String(), "cover:")
}

func TestListings_SearchFilter(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	ta.createListing(t, "Pressure washer")
	ta.createListing(t, "Folding tables")

	require.NoError(t, ta.run(t, "listings", "-search", "washer"))
	assert.Contains(t, ta.out.String(), "Pressure washer")
	assert.NotContains(t, ta.out.String(), "Folding tables")
}

func TestListings_MineFilter(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	ta.createListing(t, "Pressure washer")

	ta.signup(t, "Sam", "sam@example.com")
	require.NoError(t, ta.run(t, "listings", "-mine"))
	assert.Contains(t, ta.out.String(), "no listings found")
}

func TestListings_FallbackOnNetworkError(t *testing.T) {
	ta := newTestAppAt(t, "http://127.0.0.1:1")

	require.NoError(t, ta.run(t, "listings"))
	out := ta.out.String()
	assert.Contains(t, out, "Cannot connect to API. Using demo data.")
	assert.Contains(t, out, "demo-1")
}

func TestApplyUnapply(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	// Owner cannot apply to their own listing.
	err := ta.run(t, "apply", listingID, "-message", "mine")
	assert.ErrorIs(t, err, errs.ErrValidation)

	ta.signup(t, "Sam", "sam@example.com")
	require.NoError(t, ta.run(t, "apply", listingID, "-message", "Weekend project"))
	assert.Contains(t, ta.out.String(), "applied for listing")

	// Second application by the same user is rejected locally.
	err = ta.run(t, "apply", listingID, "-message", "again")
	assert.ErrorIs(t, err, errs.ErrValidation)

	require.NoError(t, ta.run(t, "unapply", listingID))
	assert.Contains(t, ta.out.String(), "withdrew application")
}

func TestApproveFlow(t *testing.T) {
	ta := newTestApp(t)
	ownerID := ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	ta.signup(t, "Sam", "sam@example.com")
	require.NoError(t, ta.run(t, "apply", listingID, "-message", "Weekend project"))

	// Only the owner can approve.
	samsView := ta.run(t, "approve", listingID, "whoever")
	assert.ErrorIs(t, samsView, errs.ErrValidation)

	require.NoError(t, ta.run(t, "login", ownerID))
	samID := regexp.MustCompile(`(\S+) \[pending\]`)
	require.NoError(t, ta.run(t, "listing", listingID))
	m := samID.FindStringSubmatch(ta.out.String())
	require.NotNil(t, m, "listing output: %s", ta.out.String())

	require.NoError(t, ta.run(t, "approve", listingID, m[1]))
	out := ta.out.String()
	assert.Contains(t, out, "approved application")
	assert.Contains(t, out, "[approved]")
	assert.Contains(t, out, "available: false")
}

func TestRate(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	// Owners cannot rate their own listing.
	err := ta.run(t, "rate", listingID, "-rating", "5")
	assert.ErrorIs(t, err, errs.ErrValidation)

	ta.signup(t, "Sam", "sam@example.com")
	require.NoError(t, ta.run(t, "rate", listingID, "-rating", "4.5", "-comment", "Great pressure"))

	require.NoError(t, ta.run(t, "listing", listingID))
	assert.Contains(t, ta.out.String(), "rating: 4.5 (1)")
	assert.Contains(t, ta.out.String(), "Great pressure")
}

func TestDelete(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	ta.signup(t, "Sam", "sam@example.com")
	err := ta.run(t, "delete", listingID)
	assert.ErrorIs(t, err, errs.ErrValidation, "only the owner deletes")
}

func TestDeleteByOwner(t *testing.T) {
	ta := newTestApp(t)
	ta.signup(t, "Dana", "dana@example.com")
	listingID := ta.createListing(t, "Pressure washer")

	require.NoError(t, ta.run(t, "delete", listingID))
	assert.Contains(t, ta.out.String(), "deleted listing")

	err := ta.run(t, "listing", listingID)
	assert.ErrorIs(t, err, errs.ErrAPI)
}
