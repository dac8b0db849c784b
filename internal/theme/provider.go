package theme

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "theme"
	// SystemHeader is the client hint carrying the OS colour scheme.
	SystemHeader = "Sec-CH-Prefers-Color-Scheme"

	contextKey   = "theme.state"
	cookieMaxAge = 365 * 24 * 3600
)

// Provider attaches a State to every request. The state is seeded from the
// preference cookie and the system hint, persists changes back to the cookie,
// and is closed when the request ends.
func Provider() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref, _ := c.Cookie(CookieName)
		st := NewState(Mode(pref), c.GetHeader(SystemHeader) == "dark")
		st.Subscribe(func(mode, _ Mode) {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, string(mode), cookieMaxAge, "/", "", false, false)
		})
		c.Header("Accept-CH", SystemHeader)
		c.Header("Vary", SystemHeader)
		c.Set(contextKey, st)
		c.Next()
		st.Close()
	}
}

// From returns the request's State, or a System state when no Provider ran.
func From(c *gin.Context) *State {
	if v, ok := c.Get(contextKey); ok {
		if st, ok := v.(*State); ok {
			return st
		}
	}
	return NewState(System, false)
}

type setRequest struct {
	Mode string `json:"mode"`
}

// Handler serves POST /api/theme. An empty body or mode toggles.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := From(c)
		var req setRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
		}
		var err error
		if req.Mode == "" {
			_, err = st.Toggle()
		} else {
			var m Mode
			if m, err = ParseMode(req.Mode); err == nil {
				err = st.Set(m)
			}
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"mode": st.Mode(), "resolved": st.Resolved()})
	}
}
