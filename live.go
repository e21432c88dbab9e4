package guidebook

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/views"
)

const (
	liveFrameRate  = 20 // inbound frames per second
	liveFrameBurst = 40
	liveMaxFrame   = 4 << 10
	liveWriteWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// clientFrame is a message from the browser.
type clientFrame struct {
	Type  string `json:"type"`
	Path  string `json:"path,omitempty"`
	Query string `json:"query,omitempty"`
}

// serverFrame is a message to the browser: either the effects and
// re-rendered regions of one dispatch, or an error.
type serverFrame struct {
	Type    string        `json:"type"`
	Session string        `json:"session,omitempty"`
	Effects []effectFrame `json:"effects,omitempty"`
	HTML    *regions      `json:"html,omitempty"`
	Message string        `json:"message,omitempty"`
}

type regions struct {
	Main   string `json:"main"`
	Header string `json:"header"`
}

type effectFrame struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Top   *int   `json:"top,omitempty"`
	Path  string `json:"path,omitempty"`
	Mode  string `json:"mode,omitempty"`
}

var errUnknownFrame = errors.New("guidebook: unknown frame type")

// frameMsg maps a client frame to the message it stands for.
func frameMsg(f clientFrame) (browser.Msg, error) {
	switch f.Type {
	case "navigate":
		return browser.RouteChanged{Route: browser.RouteFromPath(f.Path)}, nil
	case "toggle_guide_list":
		return browser.ToggleGuideList{}, nil
	case "hide_guide_list":
		return browser.HideGuideList{}, nil
	case "toggle_menu":
		return browser.ToggleMenu{}, nil
	case "hide_menu":
		return browser.HideMenu{}, nil
	case "search":
		return browser.SearchQueryChanged{Query: f.Query}, nil
	case "toggle_mode":
		return browser.ToggleMode{}, nil
	}
	return nil, errUnknownFrame
}

func encodeEffects(effects []browser.Effect) []effectFrame {
	out := make([]effectFrame, 0, len(effects))
	for _, eff := range effects {
		switch e := eff.(type) {
		case browser.SetTitle:
			out = append(out, effectFrame{Kind: "set_title", Title: e.Title})
		case browser.ScrollTo:
			top := e.Top
			out = append(out, effectFrame{Kind: "scroll_to", Top: &top})
		case browser.ReplaceURL:
			out = append(out, effectFrame{Kind: "replace_url", Path: e.Path})
		case browser.PersistConfig:
			out = append(out, effectFrame{Kind: "persist_config", Mode: e.Config.Mode.String()})
		}
	}
	return out
}

// handleLive upgrades to a WebSocket and runs one state machine for the
// life of the connection. Frames are handled strictly one at a time, so
// the model never sees concurrent updates.
func (a *App) handleLive(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		a.Logger.Warn("websocket upgrade", "error", err)
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(liveMaxFrame)

	ctx := c.Request().Context()
	id := uuid.NewString()
	log := a.Logger.With("session", id, "visitor", VisitorID(c))
	log.Debug("live session opened")
	defer log.Debug("live session closed")

	route := browser.RouteFromPath(c.QueryParam("path"))
	s, err := a.newSession(ctx, VisitorID(c), route, c.Request().UserAgent())
	if err != nil {
		log.Error("start live session", "error", err)
		_ = a.writeFrame(conn, serverFrame{Type: "error", Message: "could not start session"})
		return nil
	}
	opts := views.PageOptions{CSRFToken: CsrfToken(c)}
	if err := a.writeDispatch(ctx, conn, id, s, s.recorder.Effects(), opts); err != nil {
		log.Debug("write", "error", err)
		return nil
	}

	limiter := rate.NewLimiter(liveFrameRate, liveFrameBurst)
	for {
		var f clientFrame
		if err := conn.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read", "error", err)
			}
			return nil
		}
		if !limiter.Allow() {
			log.Warn("live frame dropped", "type", f.Type)
			continue
		}
		msg, err := frameMsg(f)
		if err != nil {
			if werr := a.writeFrame(conn, serverFrame{Type: "error", Message: "unknown frame type " + f.Type}); werr != nil {
				return nil
			}
			continue
		}

		effects, err := s.send(ctx, msg)
		if err != nil {
			log.Error("persist preferences", "mode", s.model().Mode.String(), "error", err)
			if werr := a.writeFrame(conn, serverFrame{Type: "error", Message: "could not save preferences"}); werr != nil {
				return nil
			}
		}
		if err := a.writeDispatch(ctx, conn, id, s, effects, opts); err != nil {
			log.Debug("write", "error", err)
			return nil
		}
	}
}

func (a *App) writeDispatch(ctx context.Context, conn *websocket.Conn, id string, s *liveSession, effects []browser.Effect, opts views.PageOptions) error {
	site := a.siteInfo()
	m := s.model()
	main, err := renderToString(ctx, a.Views.Main(site, m))
	if err != nil {
		return err
	}
	header, err := renderToString(ctx, a.Views.Header(site, m, opts))
	if err != nil {
		return err
	}
	return a.writeFrame(conn, serverFrame{
		Type:    "effects",
		Session: id,
		Effects: encodeEffects(effects),
		HTML:    &regions{Main: main, Header: header},
	})
}

func (a *App) writeFrame(conn *websocket.Conn, f serverFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(liveWriteWait)); err != nil {
		return err
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
