// Package provider talks to the local identity agent. The agent never
// pushes: notifications queue on its side until Pump drains them and
// hands them to the registered handler on the calling goroutine, so
// nothing is delivered unless somebody keeps pumping.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fatcatfablab/ticketgen/types"
)

const (
	sessionPath = "/api/v1/session"
	ticketsPath = "/api/v1/tickets"
	drainPath   = "/api/v1/notifications/drain"

	notifTicket = "ticket"
)

type Session struct {
	LoggedOn bool
	UserId   string
}

type TicketHandler func(types.TicketResult)

type Client struct {
	host     string
	token    string
	hc       *http.Client
	onTicket TicketHandler
}

func New(host, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{host: host, token: token, hc: hc}
}

// HandleTicket registers the handler Pump feeds ticket notifications
// to. Register it before requesting a ticket so nothing can be missed.
func (c *Client) HandleTicket(h TicketHandler) {
	c.onTicket = h
}

func (c *Client) Session(ctx context.Context) (Session, error) {
	var msg sessionMsg
	if err := c.do(ctx, http.MethodGet, sessionPath, nil, &msg); err != nil {
		return Session{}, err
	}
	return Session{LoggedOn: msg.LoggedOn, UserId: msg.UserId}, nil
}

func (c *Client) RequestTicket(ctx context.Context, audience string) (uint32, error) {
	var resp ticketResp
	if err := c.do(ctx, http.MethodPost, ticketsPath, ticketReq{Audience: audience}, &resp); err != nil {
		return 0, fmt.Errorf("error requesting ticket: %w", err)
	}
	return resp.Handle, nil
}

// Pump drains the agent's pending notifications and runs the handler
// for each ticket notification before returning.
func (c *Client) Pump(ctx context.Context) error {
	var pending []notification
	if err := c.do(ctx, http.MethodPost, drainPath, nil, &pending); err != nil {
		return fmt.Errorf("error draining notifications: %w", err)
	}

	for _, n := range pending {
		if n.Type != notifTicket || c.onTicket == nil {
			continue
		}
		r := types.TicketResult{Handle: n.Handle, Ticket: n.Ticket}
		if n.Error != "" {
			r.Err = errors.New(n.Error)
		}
		c.onTicket(r)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding agent request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	u := url.URL{Scheme: "http", Host: c.host, Path: path}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return fmt.Errorf("error building agent request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("error calling agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("agent returned: %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding agent response: %w", err)
		}
	}

	return nil
}
