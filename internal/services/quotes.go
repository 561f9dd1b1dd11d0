package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"statuscheck-backend/internal/errs"
)

// Generator produces advisory text for a prompt. It has no side
// effects and may take arbitrarily long; callers pass a context.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MockGenerator returns canned text after a short delay, standing in
// for the real quote/insight provider.
type MockGenerator struct {
	Delay time.Duration
}

var quotes = []string{
	"The sun is a daily reminder that we too can rise again from the darkness, that we too can shine our own light.",
	"You are not a drop in the ocean. You are the entire ocean in a drop.",
	"It's okay not to be okay. It's a part of being human.",
}

var insights = []string{
	"Your recent entries show you checking in with yourself regularly. That consistency is worth keeping.",
	"There's a mix of heavier and lighter days in your writing. Noticing both is a sign of honest reflection.",
	"You've been putting words to difficult feelings. Naming them is often the first step to easing them.",
}

// Generate returns a canned response for the prompt.
func (g *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if strings.Contains(prompt, "journal") {
		return insights[rand.Intn(len(insights))], nil
	}
	return quotes[rand.Intn(len(quotes))], nil
}

// QuoteService serves motivational quotes and premium journal insights
type QuoteService struct {
	generator Generator
	profiles  ProfileStore
	journal   JournalStore
}

// NewQuoteService creates a new quote service
func NewQuoteService(generator Generator, profiles ProfileStore, journal JournalStore) *QuoteService {
	return &QuoteService{
		generator: generator,
		profiles:  profiles,
		journal:   journal,
	}
}

// MotivationalQuote returns one quote for the home screen.
func (s *QuoteService) MotivationalQuote(ctx context.Context) (string, error) {
	return s.generator.Generate(ctx, "motivational quote")
}

// JournalInsight generates an insight from the user's recent entries.
// Premium only.
func (s *QuoteService) JournalInsight(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !profile.IsPremium {
		return "", fmt.Errorf("%w: journal insights are a premium feature", errs.ErrPremiumRequired)
	}

	entries, err := s.journal.ListByUser(ctx, userID, 5)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: no journal entries to analyze", errs.ErrValidation)
	}

	var b strings.Builder
	b.WriteString("journal insight for recent entries:\n")
	for _, e := range entries {
		b.WriteString(e.Text)
		b.WriteString("\n")
	}
	return s.generator.Generate(ctx, b.String())
}
