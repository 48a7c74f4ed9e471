package errors

import (
	"github.com/cristianoliveira/toastbox/internal/domain"
)

// Shower is the producer side of a notification center.
type Shower interface {
	Show(message string, severity domain.Severity) (domain.ID, error)
}

// ShowerFunc adapts a function to Shower.
type ShowerFunc func(message string, severity domain.Severity) (domain.ID, error)

// Show calls f.
func (f ShowerFunc) Show(message string, severity domain.Severity) (domain.ID, error) {
	return f(message, severity)
}

// CenterHandler turns handled messages into toasts. When the center rejects
// a message, it goes to the fallback handler instead.
type CenterHandler struct {
	center   Shower
	fallback ErrorHandler
}

// NewCenterHandler creates a CenterHandler. fallback may be nil.
func NewCenterHandler(center Shower, fallback ErrorHandler) *CenterHandler {
	return &CenterHandler{center: center, fallback: fallback}
}

func (h *CenterHandler) Error(msg string) {
	h.show(msg, domain.SeverityError, ErrorHandler.Error)
}

func (h *CenterHandler) Warning(msg string) {
	h.show(msg, domain.SeverityWarning, ErrorHandler.Warning)
}

func (h *CenterHandler) Info(msg string) {
	h.show(msg, domain.SeverityInfo, ErrorHandler.Info)
}

func (h *CenterHandler) Success(msg string) {
	h.show(msg, domain.SeveritySuccess, ErrorHandler.Success)
}

func (h *CenterHandler) show(msg string, sev domain.Severity, fallback func(ErrorHandler, string)) {
	if h.center != nil {
		if _, err := h.center.Show(msg, sev); err == nil {
			return
		}
	}
	if h.fallback != nil {
		fallback(h.fallback, msg)
	}
}
