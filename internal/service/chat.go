package service

import (
	"context"
	"fmt"
	"strings"

	"hct-voice/internal/contextutil"
	"hct-voice/internal/llm"
	"hct-voice/internal/search"
	"hct-voice/internal/session"
)

// searchMaxResults is how many documents each chat turn retrieves;
// promptDocs of those are injected into the prompt.
const (
	searchMaxResults = 3
	promptDocs       = 2
	historyWindow    = 2
)

// staticKnowledge is the baseline product summary the model always
// sees, so answers degrade gracefully when retrieval comes up empty.
const staticKnowledge = `F-500: Multi-class fire suppression (A,B,C,D,lithium). Fluorine-free, biodegradable. NFPA 18A certified. Reduces smoke 97%, toxins 98%.
HydroLock: Vapor mitigation, tank degassing. Reduces LEL.
Pinnacle: PFAS-free Class A foam.
Dust Wash: Combustible dust control.
Diamond Doser: Proportioning system for HCT products.`

// KnowledgeSearcher is the slice of the search index the chat service
// consumes.
type KnowledgeSearcher interface {
	Query(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// LLMClient streams a model reply for an ordered message list.
type LLMClient interface {
	StreamChat(ctx context.Context, messages []llm.ChatMessage, callback func(chunk string) error) error
}

// WebFetcher returns live page text relevant to a query, or "".
type WebFetcher interface {
	ContextFor(ctx context.Context, query string) string
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	SessionID string
	Message   string
}

// ChatService answers product questions with retrieved context and
// per-session conversational memory.
type ChatService interface {
	// StreamChat answers a chat request, streaming the reply via callback.
	StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error
}

type chatService struct {
	searcher KnowledgeSearcher
	llm      LLMClient
	web      WebFetcher
	sessions *session.Store
}

// NewChatService creates a new ChatService.
func NewChatService(searcher KnowledgeSearcher, llmClient LLMClient, web WebFetcher, sessions *session.Store) ChatService {
	return &chatService{
		searcher: searcher,
		llm:      llmClient,
		web:      web,
		sessions: sessions,
	}
}

// StreamChat retrieves knowledge-base and website context for the
// question, streams the model's answer and records the exchange in the
// session. Retrieval failures degrade to the static knowledge summary
// instead of failing the turn.
func (s *chatService) StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	// Business validation
	if req.Message == "" {
		logger.WarnContext(ctx, "empty message in streaming chat request")
		return &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}
	if req.SessionID == "" {
		req.SessionID = session.NewID()
	}

	localContext := s.knowledgeContext(ctx, req.Message)

	var webContext string
	if s.web != nil {
		if page := s.web.ContextFor(ctx, req.Message); page != "" {
			webContext = fmt.Sprintf("\n\n=== FROM WEBSITE (Latest) ===\n%s\n=== END WEBSITE ===\n", page)
		}
	}

	messages := []llm.ChatMessage{
		{Role: "system", Content: systemPrompt(localContext, webContext)},
	}
	history := s.sessions.History(req.SessionID)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, m := range history {
		messages = append(messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: req.Message})

	var reply strings.Builder
	err := s.llm.StreamChat(ctx, messages, func(chunk string) error {
		reply.WriteString(chunk)
		return callback(chunk)
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to stream LLM response", "error", err)
		return WrapError(err, "failed to stream LLM response")
	}

	s.sessions.Append(req.SessionID,
		session.Message{Role: "user", Content: req.Message},
		session.Message{Role: "assistant", Content: reply.String()},
	)

	logger.InfoContext(ctx, "chat turn completed",
		"session_id", req.SessionID,
		"message_length", len(req.Message),
		"reply_length", reply.Len())
	return nil
}

// knowledgeContext runs the retrieval query and formats the best
// snippets into a prompt block. Errors and empty results yield "".
func (s *chatService) knowledgeContext(ctx context.Context, query string) string {
	logger := contextutil.LoggerFromContext(ctx)

	results, err := s.searcher.Query(ctx, query, searchMaxResults)
	if err != nil {
		logger.WarnContext(ctx, "knowledge search failed", "error", err)
		return ""
	}
	if len(results) == 0 {
		logger.DebugContext(ctx, "no knowledge base documents matched", "query", query)
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n=== FROM HCT KNOWLEDGE BASE ===\n")
	for i, r := range results {
		if i >= promptDocs {
			break
		}
		fmt.Fprintf(&b, "\n[Document %d: %s]\n%s\n", i+1, r.Filename, r.Snippet)
	}
	b.WriteString("=== END KNOWLEDGE BASE ===\n")
	return b.String()
}

func systemPrompt(localContext, webContext string) string {
	return fmt.Sprintf(`You are the HCT Voice Agent, a knowledgeable and conversational expert on Hazard Control Technologies products and fire suppression solutions.

RESPONSE STYLE:
- Provide comprehensive answers of 6-7 sentences that fully explain the topic
- Be conversational and professional, never say "I don't have that in my knowledge base"
- If you don't have specific information, provide related helpful information about HCT products and offer to help with related topics
- Occasionally (about 30%% of the time) ask a relevant follow-up question to engage the user, especially when:
  * The user asks a broad question that could be narrowed down
  * There are multiple product options that might fit their needs
  * You want to understand their specific use case better
- Don't ask follow-up questions when the user asks a very specific factual question that you fully answered

KNOWLEDGE SOURCES (use these when available):
%s
%s
%s

Remember: Be helpful, detailed, and conversational. Focus on providing value even if you don't have the exact information requested.`, staticKnowledge, localContext, webContext)
}
