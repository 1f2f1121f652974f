package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/devchronicle/chronicle/pkg/card"
	"github.com/devchronicle/chronicle/pkg/github"
	"github.com/devchronicle/chronicle/pkg/ratelimit"
	"github.com/devchronicle/chronicle/pkg/report"
)

const (
	fetchTimeout  = 30 * time.Second
	maxHandleLen  = 100
	zennFetchWarn = "Zenn記事の取得に失敗しました"
)

// The upstream collaborators, narrowed to what the handlers call so tests
// can substitute fakes.
type githubFetcher interface {
	FetchUserData(ctx context.Context, username string) (*report.GitHubData, []string, error)
}

type zennFetcher interface {
	FetchArticles(ctx context.Context, username string) (*report.ZennData, error)
}

type commentGenerator interface {
	Generate(ctx context.Context, provider, model, summary string) (string, error)
}

type server struct {
	github     githubFetcher
	zenn       zennFetcher
	commentary commentGenerator
	dailyLimit *ratelimit.Daily
	logger     *slog.Logger
}

// fetchReport pulls both platforms concurrently and shapes the view model.
// A Zenn failure degrades to a notice; a GitHub failure is fatal.
func (s *server) fetchReport(ctx context.Context, ghUser, zennUser string) (*report.Report, error) {
	var (
		wg       sync.WaitGroup
		ghData   *report.GitHubData
		warnings []string
		ghErr    error
		zennData *report.ZennData
	)

	if ghUser != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ghData, warnings, ghErr = s.github.FetchUserData(ctx, ghUser)
		}()
	}

	if zennUser != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := s.zenn.FetchArticles(ctx, zennUser)
			if err != nil {
				s.logger.Warn("Zenn fetch failed", "username", zennUser, "error", err)
				return
			}
			zennData = data
		}()
	}
	wg.Wait()

	if ghErr != nil {
		return nil, ghErr
	}
	if zennUser != "" && zennData == nil {
		warnings = append(warnings, zennFetchWarn)
	}

	r := report.Build(ghData, zennData, ghUser, zennUser)
	r.Notices = warnings
	return r, nil
}

func validHandle(name string) bool {
	return name != "" && len(name) <= maxHandleLen && !strings.ContainsAny(name, " /\\")
}

type pageData struct {
	GHUser   string
	ZennUser string
	Report   *report.Report
	Error    string
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, tmplName string) {
	ghUser := strings.TrimSpace(r.URL.Query().Get("gh"))
	zennUser := strings.TrimSpace(r.URL.Query().Get("zenn"))

	data := pageData{GHUser: ghUser, ZennUser: zennUser}
	if ghUser != "" || zennUser != "" {
		if (ghUser != "" && !validHandle(ghUser)) || (zennUser != "" && !validHandle(zennUser)) {
			data.Error = "ユーザー名の形式が正しくありません"
		} else {
			ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
			defer cancel()

			rep, err := s.fetchReport(ctx, ghUser, zennUser)
			switch {
			case errors.Is(err, github.ErrUserNotFound) && zennUser != "":
				// An unresolved primary identity is fatal only for its own
				// section; the article side still gets its report.
				notice := fmt.Sprintf("GitHubユーザー「%s」が見つかりません", ghUser)
				rep, err = s.fetchReport(ctx, "", zennUser)
				if err == nil {
					rep.Notices = append([]string{notice}, rep.Notices...)
					data.Report = rep
				} else {
					data.Error = notice
				}
			case errors.Is(err, github.ErrUserNotFound):
				data.Error = fmt.Sprintf("GitHubユーザー「%s」が見つかりません", ghUser)
			case err != nil:
				s.logger.Error("report build failed", "gh", ghUser, "error", err)
				data.Error = "レポートの生成に失敗しました。時間をおいてお試しください。"
			default:
				data.Report = rep
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, tmplName, data); err != nil {
		s.logger.Error("template execution failed", "template", tmplName, "error", err)
	}
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderPage(w, r, "home.html")
}

func (s *server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderPage(w, r, "embed.html")
}

// handleExport downloads a self-contained snapshot, as HTML or, with
// ?format=md, converted to Markdown.
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ghUser := strings.TrimSpace(r.URL.Query().Get("gh"))
	zennUser := strings.TrimSpace(r.URL.Query().Get("zenn"))
	if !validHandle(ghUser) {
		http.Error(w, "gh parameter is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	rep, err := s.fetchReport(ctx, ghUser, zennUser)
	if errors.Is(err, github.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("export failed", "gh", ghUser, "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "export.html", pageData{GHUser: ghUser, ZennUser: zennUser, Report: rep}); err != nil {
		s.logger.Error("export template failed", "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "md" {
		md, err := htmltomarkdown.ConvertString(buf.String())
		if err != nil {
			s.logger.Error("markdown conversion failed", "error", err)
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "chronicle-"+ghUser+".md"))
		_, _ = w.Write([]byte(md))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "chronicle-"+ghUser+".html"))
	_, _ = w.Write(buf.Bytes())
}

func (s *server) handleAPIGitHub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if !validHandle(username) {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	data, warnings, err := s.github.FetchUserData(ctx, username)
	if errors.Is(err, github.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("GitHub fetch failed", "username", username, "error", err)
		http.Error(w, "Upstream fetch failed", http.StatusBadGateway)
		return
	}
	for _, warning := range warnings {
		s.logger.Warn("degraded GitHub section", "username", username, "notice", warning)
	}

	writeJSON(w, data)
}

func (s *server) handleAPIZenn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if !validHandle(username) {
		http.Error(w, "username is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	data, err := s.zenn.FetchArticles(ctx, username)
	if err != nil {
		s.logger.Error("Zenn fetch failed", "username", username, "error", err)
		http.Error(w, "Upstream fetch failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, data)
}

func (s *server) handleAPICard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ghUser := strings.TrimSpace(r.URL.Query().Get("gh"))
	zennUser := strings.TrimSpace(r.URL.Query().Get("zenn"))
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")

	if !validHandle(ghUser) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(card.ErrorCard("Error: gh parameter is required")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	rep, err := s.fetchReport(ctx, ghUser, zennUser)
	if errors.Is(err, github.ErrUserNotFound) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(card.ErrorCard("User not found: " + ghUser)))
		return
	}
	if err != nil {
		s.logger.Error("card fetch failed", "gh", ghUser, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(card.ErrorCard("Internal error")))
		return
	}

	opts := card.Options{
		Dark:     r.URL.Query().Get("dark") == "1",
		ZennUser: zennUser,
	}
	if width, err := strconv.Atoi(r.URL.Query().Get("width")); err == nil {
		opts.Width = width
	}

	w.Header().Set("Cache-Control", "public, max-age=300, s-maxage=300")
	_, _ = w.Write([]byte(card.Render(ghUser, card.StatsFromReport(rep), opts)))
}

// dailyLimitExhausted is the fixed message the page shows verbatim.
const dailyLimitExhausted = "AI所感の生成は1日3回までです。明日またお試しください。"

func (s *server) handleAIComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	allowed, remaining := s.dailyLimit.CheckAndConsume(clientIP(r))
	if !allowed {
		w.Header().Set("X-RateLimit-Remaining", "0")
		writeJSONError(w, dailyLimitExhausted, http.StatusTooManyRequests)
		return
	}

	var req struct {
		Summary  string `json:"summary"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid ai-comment request", "error", err, "remote_addr", r.RemoteAddr)
		writeJSONError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Summary) == "" {
		writeJSONError(w, "summary is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	comment, err := s.commentary.Generate(ctx, req.Provider, req.Model, req.Summary)
	if err != nil {
		s.logger.Error("commentary generation failed", "provider", req.Provider, "error", err)
		writeJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	writeJSON(w, map[string]string{"comment": comment})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
