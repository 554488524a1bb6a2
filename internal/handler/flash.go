package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "petclinic_flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	flashSuccess = "success"
	flashError   = "error"
)

func setFlash(c *gin.Context, kind, msg string) {
	c.SetCookie(flashCookie, kind+"|"+msg, 60, "/", "", false, true)
}

// popFlash returns the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	v, err := c.Cookie(flashCookie)
	if err != nil || v == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	kind, msg, ok := strings.Cut(v, "|")
	if !ok {
		return &Flash{Kind: flashSuccess, Message: v}
	}
	return &Flash{Kind: kind, Message: msg}
}
