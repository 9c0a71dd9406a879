package spiritual

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/middleware"
	"github.com/gracepath/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the endpoints. Prayer and speech require a bearer
// token. scriptureMW guards the lookup route, which does no generation and is
// limited by the default rule.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, scriptureMW ...gin.HandlerFunc) {
	rg.POST("/prayers/generate", middleware.RequireAuth(), h.generatePrayer)
	rg.GET("/daily-message", h.dailyMessage)
	rg.POST("/guidance/chat", h.guidanceChat)
	rg.POST("/speech", middleware.RequireAuth(), h.speech)
	rg.GET("/scripture", append(scriptureMW, h.scripture)...)
}

func (h *Handler) generatePrayer(c *gin.Context) {
	var req PrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Auth comes before body validation.
		if !middleware.IsAuthenticated(c) {
			response.Unauthorized(c)
			return
		}
		response.BadRequest(c, "invalid request body")
		return
	}
	out, err := h.svc.GeneratePrayer(c.Request.Context(), middleware.Subject(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	middleware.SetRateLimitHeaders(c, out.RateLimit)
	response.OK(c, out)
}

func (h *Handler) dailyMessage(c *gin.Context) {
	lang := c.Query("lang")
	if lang == "" {
		lang = c.Query("language")
	}
	out, err := h.svc.DailyMessage(c.Request.Context(), middleware.Subject(c), lang)
	if err != nil {
		h.writeError(c, err)
		return
	}
	middleware.SetRateLimitHeaders(c, out.RateLimit)
	response.OK(c, out)
}

func (h *Handler) guidanceChat(c *gin.Context) {
	var req GuidanceRequest
	// A malformed body is answered like an empty message.
	_ = c.ShouldBindJSON(&req)
	out := h.svc.Guide(c.Request.Context(), middleware.Subject(c), req)
	middleware.SetRateLimitHeaders(c, out.RateLimit)
	response.OK(c, out)
}

func (h *Handler) speech(c *gin.Context) {
	var req SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if !middleware.IsAuthenticated(c) {
			response.Unauthorized(c)
			return
		}
		response.BadRequest(c, "invalid request body")
		return
	}
	out, err := h.svc.Speak(c.Request.Context(), middleware.Subject(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	middleware.SetRateLimitHeaders(c, out.RateLimit)
	response.OK(c, out)
}

func (h *Handler) scripture(c *gin.Context) {
	count, _ := strconv.Atoi(c.Query("count"))
	lang := c.Query("lang")
	if lang == "" {
		lang = c.Query("language")
	}
	response.OK(c, h.svc.LookupScripture(c.Query("theme"), lang, c.Query("season"), count))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		rlErr  *RateLimitError
		modErr *ModerationError
	)
	switch {
	case errors.Is(err, ErrUnauthenticated):
		response.Unauthorized(c)
	case errors.As(err, &rlErr):
		middleware.SetRateLimitHeaders(c, rlErr.Result)
		response.TooManyRequests(c, "too many requests, please wait a moment", middleware.RetryAfterSeconds(rlErr.Result, h.svc.now()))
	case errors.As(err, &modErr):
		response.BadRequest(c, "content not appropriate: "+modErr.Verdict.Reason)
	case errors.Is(err, ErrMissingIntention), errors.Is(err, ErrEmptyText), errors.Is(err, ErrTextTooLong):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrSpeechUnavailable):
		response.ServiceUnavailable(c, err.Error(), FallbackBrowserSpeech)
	case errors.Is(err, ErrOutputRejected), errors.Is(err, ErrSpeechFailed):
		response.InternalError(c, err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
