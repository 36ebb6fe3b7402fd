package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/domain"
	"github.com/gorilla/websocket"
)

// finishTimeout bounds the post-completion submit+fetch; the participant's
// own result has already been delivered by then.
const finishTimeout = 10 * time.Second

type Handler struct {
	service  *app.AttemptService
	upgrader websocket.Upgrader
}

func NewHandler(service *app.AttemptService) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Name string `json:"name"`
}

type answerPayload struct {
	QuestionID int             `json:"questionId"`
	Value      json.RawMessage `json:"value"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type readyPayload struct {
	AttemptID string `json:"attemptId"`
	Total     int    `json:"total"`
}

type questionPayload struct {
	ID      int                 `json:"id"`
	Number  int                 `json:"number"`
	Total   int                 `json:"total"`
	Prompt  string              `json:"prompt"`
	Kind    domain.QuestionKind `json:"kind"`
	Options []string            `json:"options,omitempty"`
}

type selectedPayload struct {
	QuestionID int `json:"questionId"`
}

// ServeWS upgrades the request to a websocket and drives one quiz attempt
// over it: start -> question/answer/next loop -> result, with the
// leaderboard pushed separately once the async submit+fetch resolves.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.NewSession(r.Context())
	if err != nil {
		log.Printf("new attempt: %v", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "quiz unavailable"}})
		return
	}
	defer h.service.Release(session.ID())

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	var finishDone chan struct{}

	// A single writer goroutine owns the socket; everything else queues.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "ready", Payload: readyPayload{AttemptID: session.ID(), Total: session.Total()}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errMessage("invalid start payload")
				continue
			}
			if err := session.Start(payload.Name); err != nil {
				send <- errMessage(err.Error())
				continue
			}
			send <- questionMessage(session)

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errMessage("invalid answer payload")
				continue
			}
			value, err := decodeAnswerValue(payload.Value)
			if err != nil {
				send <- errMessage(err.Error())
				continue
			}
			if err := session.Select(payload.QuestionID, value); err != nil {
				send <- errMessage(err.Error())
				continue
			}
			send <- outboundMessage[any]{Type: "selected", Payload: selectedPayload{QuestionID: payload.QuestionID}}

		case "next":
			if err := session.Advance(); err != nil {
				send <- errMessage(err.Error())
				continue
			}
			if session.State() != app.StateCompleted {
				send <- questionMessage(session)
				continue
			}
			// Result goes out immediately; persistence and the leaderboard
			// fetch must not delay it.
			result, _ := session.Result()
			send <- outboundMessage[any]{Type: "result", Payload: result}
			finishDone = make(chan struct{})
			go func() {
				defer close(finishDone)
				ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
				defer cancel()
				lb, err := h.service.Finish(ctx, session)
				if err != nil {
					log.Printf("finish attempt %s: %v", session.ID(), err)
				}
				select {
				case send <- outboundMessage[any]{Type: "leaderboard", Payload: lb}:
				case <-closeSignals:
				}
			}()

		default:
			send <- errMessage("unsupported message type")
		}
	}

	close(closeSignals)
	if finishDone != nil {
		<-finishDone
	}
	close(send)
	<-writerDone
}

// ServeLeaderboard returns the current partitioned top slice as JSON. A
// store failure degrades to the empty view rather than an error status.
func (h *Handler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := h.service.Leaderboard(r.Context())
	if err != nil {
		log.Printf("leaderboard fetch: %v", err)
		lb = domain.Leaderboard{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(lb); err != nil {
		log.Printf("leaderboard encode: %v", err)
	}
}

func errMessage(message string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message}}
}

func questionMessage(session *app.Session) outboundMessage[any] {
	question, number, _ := session.Current()
	return outboundMessage[any]{Type: "question", Payload: questionPayload{
		ID:      question.ID,
		Number:  number,
		Total:   session.Total(),
		Prompt:  question.Prompt,
		Kind:    question.Kind,
		Options: question.Options,
	}}
}

// decodeAnswerValue accepts the client's raw selection: a JSON number for
// single-choice questions or a JSON boolean for yes/no ones.
func decodeAnswerValue(raw json.RawMessage) (domain.AnswerValue, error) {
	var index int
	if err := json.Unmarshal(raw, &index); err == nil {
		return domain.OptionAnswer(index), nil
	}
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return domain.BoolAnswer(flag), nil
	}
	return domain.AnswerValue{}, fmt.Errorf("answer must be an option index or a boolean")
}
