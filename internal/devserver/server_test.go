package devserver_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/apierr"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/devserver"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// tokenHolder is a mutable TokenSource, filled once the user signs in.
type tokenHolder struct{ token string }

func (h *tokenHolder) Token() string { return h.token }

// testEnv is one running stub backend plus helpers to sign users in against
// it through the real gateway client.
type testEnv struct {
	t       *testing.T
	baseURL string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	srv := devserver.New("test-secret", time.Hour)
	server := httptest.NewServer(srv.Router())
	t.Cleanup(server.Close)
	return &testEnv{t: t, baseURL: server.URL + "/api"}
}

// signUp registers a user and returns an authenticated client for them.
func (e *testEnv) signUp(username string) (*api.Client, models.User) {
	e.t.Helper()
	holder := &tokenHolder{}
	client := api.NewClient(e.baseURL, 5*time.Second, holder)
	resp, err := client.Register(context.Background(), api.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
		FullName: "Test " + username,
	})
	require.NoError(e.t, err)
	holder.token = resp.Token
	return client, resp.User
}

// TestRegisterAndLogin walks the auth surface: register, duplicate register,
// login, wrong password, and an authenticated profile read.
func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Register succeeds and the token works.
	client, user := env.signUp("ana")
	profile, err := client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "ana", profile.Username)

	// A second account with the same email is rejected.
	fresh := api.NewClient(env.baseURL, 5*time.Second, &tokenHolder{})
	_, err = fresh.Register(ctx, api.RegisterRequest{
		Email: "ana@example.com", Username: "ana2", Password: "password123", FullName: "Ana Again",
	})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Login with the right password succeeds, with the wrong one it is 401.
	_, err = fresh.Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "password123"})
	assert.NoError(t, err)
	_, err = fresh.Login(ctx, api.LoginRequest{Email: "ana@example.com", Password: "nope"})
	require.Error(t, err)
	assert.True(t, apierr.IsAuth(err))
}

// TestProtectedRoutesRequireToken verifies the middleware rejects missing
// and garbage tokens.
func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	anonymous := api.NewClient(env.baseURL, 5*time.Second, &tokenHolder{})
	_, err := anonymous.ListChatRooms(ctx)
	require.Error(t, err)
	assert.True(t, apierr.IsAuth(err))

	forged := api.NewClient(env.baseURL, 5*time.Second, &tokenHolder{token: "garbage"})
	_, err = forged.ListChatRooms(ctx)
	require.Error(t, err)
	assert.True(t, apierr.IsAuth(err))
}

// TestChatRoomLifecycle drives a two-user conversation end to end: open,
// reopen, send, read from the other side, mark read, delete.
func TestChatRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana, anaUser := env.signUp("ana")
	bob, bobUser := env.signUp("bob")

	// Opening a chat with yourself is rejected.
	_, err := ana.CreateChatRoom(ctx, api.CreateRoomRequest{OtherUserID: anaUser.ID})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Ana opens a room with Bob.
	room, err := ana.CreateChatRoom(ctx, api.CreateRoomRequest{OtherUserID: bobUser.ID})
	require.NoError(t, err)
	assert.Equal(t, bobUser.ID, room.OtherUser.ID)

	// Opening the same pair again returns the existing room.
	again, err := ana.CreateChatRoom(ctx, api.CreateRoomRequest{OtherUserID: bobUser.ID})
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)

	// Ana sends; the message comes back server-assigned.
	sent, err := ana.SendMessage(ctx, room.ID, api.SendMessageRequest{Content: "hello bob"})
	require.NoError(t, err)
	assert.NotZero(t, sent.ID)
	assert.Equal(t, anaUser.ID, sent.SenderID)
	assert.False(t, sent.IsRead)

	// A whitespace-only send is rejected server-side too.
	_, err = ana.SendMessage(ctx, room.ID, api.SendMessageRequest{Content: "   "})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Bob sees the room with the preview, from his own perspective.
	bobRooms, err := bob.ListChatRooms(ctx)
	require.NoError(t, err)
	require.Len(t, bobRooms, 1)
	assert.Equal(t, anaUser.ID, bobRooms[0].OtherUser.ID)
	assert.Equal(t, "hello bob", bobRooms[0].LastMessage)

	// Bob reads the log and acknowledges it.
	page, err := bob.GetMessages(ctx, room.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "hello bob", page.Messages[0].Content)

	count, err := bob.MarkMessagesRead(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Ana's copy of the log now shows the message as read.
	page, err = ana.GetMessages(ctx, room.ID, 1, 50)
	require.NoError(t, err)
	assert.True(t, page.Messages[0].IsRead)

	// A third party cannot touch the room.
	carol, _ := env.signUp("carol")
	_, err = carol.GetMessages(ctx, room.ID, 1, 50)
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Deleting removes it for both sides.
	require.NoError(t, ana.DeleteChatRoom(ctx, room.ID))
	bobRooms, err = bob.ListChatRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, bobRooms)
}

// TestSkillsAndMatches covers the listing filters and the seeking/offering
// pairing behind /matches.
func TestSkillsAndMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana, _ := env.signUp("ana")
	bob, bobUser := env.signUp("bob")

	_, err := bob.CreateSkill(ctx, api.SkillRequest{
		Title: "Guitar lessons", Category: "music", Level: "advanced", SkillType: models.SkillOffering,
	})
	require.NoError(t, err)
	_, err = ana.CreateSkill(ctx, api.SkillRequest{
		Title: "Guitar basics", Category: "music", Level: "beginner", SkillType: models.SkillSeeking,
	})
	require.NoError(t, err)

	// The public listing filters by search term.
	listing, err := ana.ListSkills(ctx, api.SkillFilter{Search: "guitar"})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Pagination.Total)

	// Ana's seeking skill pairs with Bob's offering.
	matches, err := ana.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, bobUser.ID, matches[0].UserID)
	assert.Equal(t, "Guitar lessons", matches[0].OfferedSkill)
	assert.Positive(t, matches[0].MatchScore)

	// Bob has no seeking skills, so no matches.
	matches, err = bob.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

// TestExchangeAndReviewFlow drives an exchange from request to completion
// and then the review that follows.
func TestExchangeAndReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ana, _ := env.signUp("ana")
	bob, bobUser := env.signUp("bob")

	skill, err := bob.CreateSkill(ctx, api.SkillRequest{
		Title: "Sourdough baking", Category: "cooking", Level: "expert", SkillType: models.SkillOffering,
	})
	require.NoError(t, err)

	// Bob cannot request his own skill.
	_, err = bob.CreateExchange(ctx, api.CreateExchangeRequest{SkillID: skill.ID})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Ana requests it; a duplicate pending request conflicts.
	exchange, err := ana.CreateExchange(ctx, api.CreateExchangeRequest{SkillID: skill.ID, Message: "teach me"})
	require.NoError(t, err)
	assert.Equal(t, models.ExchangePending, exchange.Status)
	_, err = ana.CreateExchange(ctx, api.CreateExchangeRequest{SkillID: skill.ID})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// Only the owner may accept; Ana's attempt is rejected.
	_, err = ana.UpdateExchangeStatus(ctx, exchange.ID, api.UpdateExchangeStatusRequest{Status: models.ExchangeAccepted})
	require.Error(t, err)

	// Bob accepts, then completes.
	_, err = bob.UpdateExchangeStatus(ctx, exchange.ID, api.UpdateExchangeStatusRequest{Status: models.ExchangeAccepted})
	require.NoError(t, err)
	done, err := bob.UpdateExchangeStatus(ctx, exchange.ID, api.UpdateExchangeStatusRequest{Status: models.ExchangeCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.ExchangeCompleted, done.Status)

	// Completing twice is an invalid transition.
	_, err = bob.UpdateExchangeStatus(ctx, exchange.ID, api.UpdateExchangeStatusRequest{Status: models.ExchangeCompleted})
	require.Error(t, err)

	// The completed exchange waits in Ana's pending-review queue.
	pending, err := ana.ListPendingReviews(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, exchange.ID, pending[0].ID)

	// Ana reviews Bob; a second review of the same exchange conflicts.
	review, err := ana.CreateReview(ctx, api.CreateReviewRequest{ExchangeID: exchange.ID, Rating: 5, Comment: "great teacher"})
	require.NoError(t, err)
	assert.Equal(t, bobUser.ID, review.RevieweeID)
	_, err = ana.CreateReview(ctx, api.CreateReviewRequest{ExchangeID: exchange.ID, Rating: 1})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))

	// The queue is empty now and Bob's rating reflects the review.
	pending, err = ana.ListPendingReviews(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	rating, err := ana.GetUserRating(ctx, bobUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rating.TotalReviews)
	assert.InDelta(t, 5.0, rating.AverageRating, 0.001)
	assert.Equal(t, 1, rating.Rating5Count)
}
