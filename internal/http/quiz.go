package http

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/entities"
	"github.com/zmx4/aelp/internal/quiz"
)

// QuizController exposes the test-session state machine over HTTP. The
// application runs a single active session at a time; the mutex guards
// it against concurrent requests.
type QuizController struct {
	source quiz.WordSource
	store  quiz.ResultStore

	mu      sync.Mutex
	session *quiz.Session
}

func NewQuizController(source quiz.WordSource, store quiz.ResultStore) *QuizController {
	return &QuizController{source: source, store: store}
}

type startQuizRequest struct {
	Range entities.TestRange `json:"range" binding:"required"`
	Count int                `json:"count" binding:"required"`
}

// Start begins a new quiz session. An in-progress session must finish
// before a new one can start.
// POST /api/quiz/start
func (qc *QuizController) Start(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid quiz request: "+err.Error())
		return
	}

	qc.mu.Lock()
	defer qc.mu.Unlock()

	if qc.session != nil && qc.session.State() == quiz.StateInProgress {
		respondConflict(c, "a test is already in progress")
		return
	}

	session := quiz.NewSession(qc.source, qc.store)
	if err := session.Start(req.Range, req.Count); err != nil {
		switch {
		case errors.Is(err, quiz.ErrInvalidQuestionCount):
			respondBadRequest(c, err.Error())
		case errors.Is(err, quiz.ErrNoWords):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "start quiz")
		}
		return
	}

	qc.session = session
	question, _ := session.Current()
	number, total := session.Progress()
	c.JSON(http.StatusOK, gin.H{
		"state":    session.State(),
		"question": question,
		"number":   number,
		"total":    total,
	})
}

// Question returns the question awaiting an answer.
// GET /api/quiz/question
func (qc *QuizController) Question(c *gin.Context) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if qc.session == nil {
		respondNotFound(c, "quiz session")
		return
	}

	question, ok := qc.session.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"state": qc.session.State()})
		return
	}

	number, total := qc.session.Progress()
	c.JSON(http.StatusOK, gin.H{
		"state":    qc.session.State(),
		"question": question,
		"number":   number,
		"total":    total,
	})
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// Answer scores the current question and advances the session. The
// response carries the next question, or the full results once the last
// answer lands.
// POST /api/quiz/answer
func (qc *QuizController) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid answer payload: "+err.Error())
		return
	}

	qc.mu.Lock()
	defer qc.mu.Unlock()

	if qc.session == nil {
		respondNotFound(c, "quiz session")
		return
	}

	isRight, err := qc.session.Submit(req.Answer)
	if err != nil {
		if errors.Is(err, quiz.ErrNotInProgress) {
			respondConflict(c, err.Error())
			return
		}
		respondInternalError(c, err, "submit answer")
		return
	}

	resp := gin.H{
		"is_right": isRight,
		"state":    qc.session.State(),
	}
	if qc.session.State() == quiz.StateFinished {
		resp["results"] = qc.session.Results()
	} else if question, ok := qc.session.Current(); ok {
		number, total := qc.session.Progress()
		resp["question"] = question
		resp["number"] = number
		resp["total"] = total
	}
	c.JSON(http.StatusOK, resp)
}

// Results returns the per-question outcomes recorded so far.
// GET /api/quiz/results
func (qc *QuizController) Results(c *gin.Context) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if qc.session == nil {
		respondNotFound(c, "quiz session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   qc.session.State(),
		"results": qc.session.Results(),
	})
}
