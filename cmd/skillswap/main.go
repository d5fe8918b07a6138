// Command skillswap is the terminal client. It signs in against the
// backend, keeps the chat state synchronized (REST for mutations, the
// websocket feed for pushes) and exposes the marketplace collections
// through a small line-oriented shell.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/api"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/cache"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/chatstore"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/config"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/live"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/session"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/store"
)

type app struct {
	client   *api.Client
	sessions *session.Store

	chats     *chatstore.Store
	skills    *store.Skills
	matches   *store.Matches
	exchanges *store.Exchanges
	reviews   *store.Reviews

	in *bufio.Scanner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sessions := session.NewStore(cfg.SessionPath)
	if _, err := sessions.Load(); err != nil {
		log.Printf("Ignoring unreadable session file: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, sessions)
	client.SetUnauthorizedHook(func() {
		fmt.Println("Session rejected by the server; you have been logged out.")
		if err := sessions.Clear(); err != nil {
			log.Printf("Failed to clear session: %v", err)
		}
	})

	chatCache, err := cache.Open(cfg.CachePath)
	if err != nil {
		log.Printf("Chat cache unavailable, continuing without it: %v", err)
		chatCache = nil
	} else {
		defer chatCache.Close()
	}

	a := &app{
		client:    client,
		sessions:  sessions,
		skills:    store.NewSkills(client),
		matches:   store.NewMatches(client),
		exchanges: store.NewExchanges(client),
		reviews:   store.NewReviews(client),
		in:        bufio.NewScanner(os.Stdin),
	}
	if chatCache != nil {
		a.chats = chatstore.New(client, chatCache)
	} else {
		a.chats = chatstore.New(client, nil)
	}

	if sessions.Current() == nil || sessions.Expired(time.Now()) {
		if err := a.signIn(); err != nil {
			log.Fatalf("Sign-in failed: %v", err)
		}
	}
	fmt.Printf("Signed in as %s\n", sessions.Current().User.Username)

	a.chats.Hydrate()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.LiveURL != "" {
		go live.NewFeed(cfg.LiveURL, sessions, a.chats).Run(ctx)
	}
	go a.announceIncoming(ctx)

	if err := a.chats.FetchRooms(ctx); err != nil {
		fmt.Println("Could not load chat rooms:", err)
	}

	a.repl(ctx)
}

// announceIncoming prints messages that arrive in the active room while the
// shell is idle, so a conversation reads live without polling.
func (a *app) announceIncoming(ctx context.Context) {
	shown := make(map[uint]int)
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.chats.Changes():
		}
		state := a.chats.Snapshot()
		if state.ActiveRoomID == 0 {
			continue
		}
		msgs := state.Messages[state.ActiveRoomID]
		for i := shown[state.ActiveRoomID]; i < len(msgs); i++ {
			printMessage(msgs[i], a.sessions.Current().User.ID)
		}
		shown[state.ActiveRoomID] = len(msgs)
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) signIn() error {
	ctx := context.Background()
	for {
		switch a.prompt("login or register? ") {
		case "login":
			resp, err := a.client.Login(ctx, api.LoginRequest{
				Email:    a.prompt("email: "),
				Password: a.prompt("password: "),
			})
			if err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			return a.sessions.Save(&session.Session{Token: resp.Token, User: resp.User})
		case "register":
			resp, err := a.client.Register(ctx, api.RegisterRequest{
				Email:    a.prompt("email: "),
				Username: a.prompt("username: "),
				FullName: a.prompt("full name: "),
				Password: a.prompt("password: "),
			})
			if err != nil {
				fmt.Println("Registration failed:", err)
				continue
			}
			return a.sessions.Save(&session.Session{Token: resp.Token, User: resp.User})
		default:
			fmt.Println("Type \"login\" or \"register\".")
		}
	}
}

func (a *app) repl(ctx context.Context) {
	fmt.Println("Type \"help\" for commands.")
	for {
		line := a.prompt("> ")
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp()
		case "quit", "exit":
			return
		case "rooms":
			a.cmdRooms(ctx)
		case "open":
			a.cmdOpen(ctx, args)
		case "close":
			a.chats.ClearSelection()
		case "send":
			a.cmdSend(ctx, strings.TrimSpace(strings.TrimPrefix(line, "send")))
		case "chat":
			a.cmdChat(ctx, args)
		case "delroom":
			a.cmdDelRoom(ctx, args)
		case "skills":
			a.cmdSkills(ctx, args)
		case "mine":
			a.cmdMine(ctx)
		case "matches":
			a.cmdMatches(ctx)
		case "exchanges":
			a.cmdExchanges(ctx, args)
		case "request":
			a.cmdRequest(ctx, args)
		case "respond":
			a.cmdRespond(ctx, args)
		case "pending":
			a.cmdPending(ctx)
		case "review":
			a.cmdReview(ctx, args)
		case "rating":
			a.cmdRating(ctx, args)
		case "logout":
			if err := a.sessions.Clear(); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Unknown command; type \"help\".")
		}
	}
}

func printHelp() {
	fmt.Print(`Commands:
  rooms                      list chat rooms
  open <roomID>              open a room, mark it read
  send <text>                send into the open room
  chat <userID>              start (or reopen) a chat with a user
  delroom <roomID>           delete a room and its history
  close                      leave the open room
  skills [search terms]      browse skill listings
  mine                       list your own skills
  matches                    list suggested partners
  exchanges [sent|received]  list exchange requests
  request <skillID> [msg]    request an exchange for a skill
  respond <id> <status>      accept/reject/complete/cancel an exchange
  pending                    exchanges awaiting your review
  review <exchID> <1-5> [comment]
  rating <userID>            rating summary for a user
  logout, quit
`)
}

func parseID(args []string) (uint, bool) {
	if len(args) == 0 {
		fmt.Println("An ID is required.")
		return 0, false
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("Not a valid ID:", args[0])
		return 0, false
	}
	return uint(id), true
}

func (a *app) cmdRooms(ctx context.Context) {
	if err := a.chats.FetchRooms(ctx); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	state := a.chats.Snapshot()
	if len(state.Rooms) == 0 {
		fmt.Println("No conversations yet; try \"chat <userID>\".")
		return
	}
	for _, room := range state.Rooms {
		preview := room.LastMessage
		if preview == "" {
			preview = "(no messages)"
		}
		fmt.Printf("  [%d] %s - %s\n", room.ID, room.OtherUser.Username, preview)
	}
}

func (a *app) cmdOpen(ctx context.Context, args []string) {
	roomID, ok := parseID(args)
	if !ok {
		return
	}
	a.chats.SelectRoom(roomID)
	// Rendering happens in announceIncoming once the fetch lands.
	if err := a.chats.FetchMessages(ctx, roomID, 1, 50); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	if err := a.chats.MarkRead(ctx, roomID); err != nil {
		fmt.Println("Mark-read failed:", err)
	}
}

func (a *app) cmdSend(ctx context.Context, content string) {
	state := a.chats.Snapshot()
	if state.ActiveRoomID == 0 {
		fmt.Println("Open a room first.")
		return
	}
	if _, err := a.chats.SendMessage(ctx, state.ActiveRoomID, content, models.MessageText); err != nil {
		fmt.Println("Send failed:", err)
	}
}

func (a *app) cmdChat(ctx context.Context, args []string) {
	userID, ok := parseID(args)
	if !ok {
		return
	}
	room, err := a.chats.CreateRoom(ctx, userID, nil)
	if err != nil {
		fmt.Println("Could not open chat:", err)
		return
	}
	fmt.Printf("Chatting with %s (room %d)\n", room.OtherUser.Username, room.ID)
	a.cmdOpen(ctx, []string{strconv.FormatUint(uint64(room.ID), 10)})
}

func (a *app) cmdDelRoom(ctx context.Context, args []string) {
	roomID, ok := parseID(args)
	if !ok {
		return
	}
	if err := a.chats.DeleteRoom(ctx, roomID); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}
	fmt.Println("Room deleted.")
}

func (a *app) cmdSkills(ctx context.Context, args []string) {
	filter := api.SkillFilter{Search: strings.Join(args, " "), Limit: 20}
	if err := a.skills.Fetch(ctx, filter); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	listing, pagination := a.skills.Listing()
	for _, skill := range listing {
		owner := ""
		if skill.User != nil {
			owner = " by " + skill.User.Username
		}
		fmt.Printf("  [%d] %s (%s, %s, %s)%s\n", skill.ID, skill.Title, skill.Category, skill.Level, skill.SkillType, owner)
	}
	fmt.Printf("  %d listings total\n", pagination.Total)
}

func (a *app) cmdMine(ctx context.Context) {
	if err := a.skills.FetchMine(ctx); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	for _, skill := range a.skills.Mine() {
		fmt.Printf("  [%d] %s (%s, %s)\n", skill.ID, skill.Title, skill.Category, skill.SkillType)
	}
}

func (a *app) cmdMatches(ctx context.Context) {
	if err := a.matches.Fetch(ctx); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	matches := a.matches.List()
	if len(matches) == 0 {
		fmt.Println("No matches yet; add a \"seeking\" skill to get suggestions.")
		return
	}
	for _, m := range matches {
		fmt.Printf("  %s offers %q for your %q (score %d, user %d)\n",
			m.UserName, m.OfferedSkill, m.SeekingSkill, m.MatchScore, m.UserID)
	}
}

func (a *app) cmdExchanges(ctx context.Context, args []string) {
	kind := ""
	if len(args) > 0 {
		kind = args[0]
	}
	if err := a.exchanges.Fetch(ctx, kind); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	for _, ex := range a.exchanges.List() {
		title := ""
		if ex.Skill != nil {
			title = ex.Skill.Title
		}
		fmt.Printf("  [%d] %s - %s\n", ex.ID, title, ex.Status)
	}
}

func (a *app) cmdRequest(ctx context.Context, args []string) {
	skillID, ok := parseID(args)
	if !ok {
		return
	}
	ex, err := a.exchanges.Create(ctx, api.CreateExchangeRequest{
		SkillID: skillID,
		Message: strings.Join(args[1:], " "),
	})
	if err != nil {
		fmt.Println("Request failed:", err)
		return
	}
	fmt.Printf("Exchange %d requested.\n", ex.ID)
}

func (a *app) cmdRespond(ctx context.Context, args []string) {
	id, ok := parseID(args)
	if !ok || len(args) < 2 {
		fmt.Println("Usage: respond <exchangeID> <accepted|rejected|completed|cancelled>")
		return
	}
	ex, err := a.exchanges.UpdateStatus(ctx, id, api.UpdateExchangeStatusRequest{Status: args[1]})
	if err != nil {
		fmt.Println("Update failed:", err)
		return
	}
	fmt.Printf("Exchange %d is now %s.\n", ex.ID, ex.Status)
}

func (a *app) cmdPending(ctx context.Context) {
	if err := a.reviews.FetchPending(ctx); err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	pending := a.reviews.Pending()
	if len(pending) == 0 {
		fmt.Println("Nothing waiting for a review.")
		return
	}
	for _, ex := range pending {
		title := ""
		if ex.Skill != nil {
			title = ex.Skill.Title
		}
		fmt.Printf("  [%d] %s\n", ex.ID, title)
	}
}

func (a *app) cmdReview(ctx context.Context, args []string) {
	exchangeID, ok := parseID(args)
	if !ok || len(args) < 2 {
		fmt.Println("Usage: review <exchangeID> <1-5> [comment]")
		return
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Rating must be 1-5.")
		return
	}
	if _, err := a.reviews.Create(ctx, api.CreateReviewRequest{
		ExchangeID: exchangeID,
		Rating:     rating,
		Comment:    strings.Join(args[2:], " "),
	}); err != nil {
		fmt.Println("Review failed:", err)
		return
	}
	fmt.Println("Review posted.")
}

func (a *app) cmdRating(ctx context.Context, args []string) {
	userID, ok := parseID(args)
	if !ok {
		return
	}
	rating, err := a.reviews.FetchRating(ctx, userID)
	if err != nil {
		fmt.Println("Fetch failed:", err)
		return
	}
	fmt.Printf("  %.1f average over %d reviews\n", rating.AverageRating, rating.TotalReviews)
}

func printMessage(msg models.Message, me uint) {
	who := "them"
	if msg.SenderID == me {
		who = "you"
	} else if msg.Sender != nil {
		who = msg.Sender.Username
	}
	fmt.Printf("  %s %s: %s\n", msg.CreatedAt.Format("15:04"), who, msg.Content)
}
