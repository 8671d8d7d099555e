package handler

import (
	"fmt"
	"net/http"

	"traced-greeter/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Hello godoc
// @Summary      Say hello
// @Description  Returns a greeting stamped with the time the traced greeting method ran
// @Tags         api
// @Produce      plain
// @Success      200  {string}  string  "hello : myCustomMethod 13:04:05.678"
// @Router       /hello [get]
func (h *Handler) Hello(c *gin.Context) {
	ctx := c.Request.Context()

	message := fmt.Sprintf("hello : %s", h.greeter.ProduceGreeting(ctx))

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("greeting.message", message))
	if h.metrics != nil {
		h.metrics.Greetings.Inc()
	}
	logging.WithTrace(ctx, h.logger).Info(message)

	c.String(http.StatusOK, message)
}
