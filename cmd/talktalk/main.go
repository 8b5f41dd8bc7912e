// File: cmd/talktalk/main.go
// Terminal client for the TalkTalk backend: keeps conversations locally,
// submits messages to /chat, and fetches /tts audio for replies.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kildre/talktalk/internal/config"
	"github.com/kildre/talktalk/internal/domain"
	"github.com/kildre/talktalk/internal/services"
	"github.com/kildre/talktalk/internal/services/chat"
	"github.com/kildre/talktalk/internal/services/speech"
	"github.com/kildre/talktalk/internal/store"
)

// filePlayer "plays" remote audio by writing it next to the working
// directory; a terminal has no speaker abstraction to drive.
type filePlayer struct {
	dir string
	n   int
}

type filePlayback struct{}

func (filePlayback) Stop() {}

func (p *filePlayer) Play(audio *speech.Audio, rate float64, done func(error)) (speech.Playback, error) {
	p.n++
	name := filepath.Join(p.dir, fmt.Sprintf("reply-%d.mp3", p.n))
	err := os.WriteFile(name, audio.Data, 0o644)
	if err == nil {
		fmt.Printf("  [audio saved to %s]\n", name)
	}
	go done(err)
	return filePlayback{}, err
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("talktalk")

	conversations := store.NewMemoryStore()

	baseURL := "http://localhost:" + cfg.ServerPort
	chatConfig := chat.DefaultConfig()
	chatConfig.BaseURL = baseURL
	orchestrator, err := chat.NewOrchestrator(conversations, chat.NewHTTPEndpoint(baseURL), chatConfig, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	speechConfig := speech.DefaultConfig()
	speechConfig.BaseURL = baseURL
	// No local synthesis engine exists in a terminal; remote failures
	// surface as a notice instead of falling back.
	controller, err := speech.NewController(speechConfig, speech.NewHTTPSynthesizer(baseURL), nil, &filePlayer{dir: "."}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer controller.Close()

	conversations.CreateConversation()
	fmt.Println("TalkTalk - type a message, or /new, /list, /switch <n>, /delete, /speak, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/new":
			conversations.CreateConversation()
			fmt.Println("started a new chat")
		case line == "/list":
			for i, c := range conversations.Conversations() {
				marker := " "
				if c.ID == conversations.CurrentConversationID() {
					marker = "*"
				}
				fmt.Printf("%s %d. %s\n", marker, i+1, c.Title)
			}
		case strings.HasPrefix(line, "/switch "):
			var n int
			fmt.Sscanf(strings.TrimPrefix(line, "/switch "), "%d", &n)
			list := conversations.Conversations()
			if n < 1 || n > len(list) {
				fmt.Println("no such chat")
				continue
			}
			conversations.SelectConversation(list[n-1].ID)
			printTranscript(conversations.CurrentMessages())
		case line == "/delete":
			conversations.DeleteConversation(conversations.CurrentConversationID())
			fmt.Println("deleted")
		case line == "/speak":
			speakLastReply(controller, conversations.CurrentMessages())
		default:
			submit(orchestrator, conversations, line)
		}
	}
}

func submit(orchestrator *chat.Orchestrator, conversations store.ConversationStore, text string) {
	err := orchestrator.Submit(context.Background(), conversations.CurrentConversationID(), text, nil)
	if errors.Is(err, chat.ErrReplyPending) {
		fmt.Println("still waiting for the previous reply")
		return
	}
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	messages := conversations.CurrentMessages()
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		fmt.Printf("assistant: %s\n", last.Content)
	}
}

func speakLastReply(controller *speech.Controller, messages []domain.Message) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleAssistant && !messages[i].IsLoading {
			err := controller.ToggleSpeak(context.Background(), &messages[i], "")
			if errors.Is(err, speech.ErrEngineUnavailable) {
				fmt.Println("speech is unavailable: the backend could not synthesize audio")
			} else if err != nil {
				fmt.Printf("speech error: %v\n", err)
			}
			return
		}
	}
	fmt.Println("nothing to speak yet")
}

func printTranscript(messages []domain.Message) {
	for _, m := range messages {
		fmt.Printf("%s: %s\n", m.Role, m.Content)
	}
}
