package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/server/models"
	"github.com/dborovskis/filevault/internal/server/services"
)

// errorMappings translates sentinel errors into wire responses.
var errorMappings = []struct {
	sentinel error
	status   int
	message  string
}{
	{common.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
	{common.ErrNotFound, http.StatusNotFound, "Not found"},
	{common.ErrAlreadyExists, http.StatusBadRequest, "Already exist"},
	{common.ErrMissingEmail, http.StatusBadRequest, "Missing email"},
	{common.ErrMissingPassword, http.StatusBadRequest, "Missing password"},
	{common.ErrMissingName, http.StatusBadRequest, "Missing name"},
	{common.ErrMissingType, http.StatusBadRequest, "Missing type"},
	{common.ErrMissingData, http.StatusBadRequest, "Missing data"},
	{common.ErrParentNotFound, http.StatusBadRequest, "Parent not found"},
	{common.ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
	{common.ErrFolderHasNoContent, http.StatusBadRequest, "A folder doesn't have content"},
}

// renderError maps a sentinel error onto the wire. Anything unmapped is an
// internal error; the original cause is logged, never leaked.
func (s *Server) renderError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			c.JSON(m.status, gin.H{"error": m.message})
			return
		}
	}

	s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

// --- accounts and sessions ---

type newUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) postUsers(c *gin.Context) {
	var req newUserRequest
	_ = c.ShouldBindJSON(&req) // malformed bodies fall through to field validation

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *Server) getConnect(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		s.renderError(c, common.ErrUnauthenticated)
		return
	}

	token, err := s.users.Connect(c.Request.Context(), email, password)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getDisconnect(c *gin.Context) {
	token := c.GetHeader(common.TokenHeaderName)
	if token == "" {
		s.renderError(c, common.ErrUnauthenticated)
		return
	}

	if err := s.users.Disconnect(c.Request.Context(), token); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) getMe(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		s.renderError(c, common.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, identity.Public())
}

// --- service health and counters ---

func (s *Server) getStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"redis": s.sessions.Ping(ctx) == nil,
		"db":    s.db.PingContext(ctx) == nil,
	})
}

func (s *Server) getStats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := s.users.CountUsers(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}

	files, err := s.files.CountFiles(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}

// --- files ---

type newFileRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID any    `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// parseKind normalizes the wire spelling of a file kind. Both the short
// forms ("file", "image") and the canonical ones are accepted; anything else
// passes through and fails kind validation downstream.
func parseKind(s string) models.FileKind {
	switch s {
	case "file":
		return models.KindPlainFile
	case "image":
		return models.KindImageFile
	}
	return models.FileKind(s)
}

// parseParentID normalizes the wire spelling of a parent reference. The
// root is written as 0, "0", "", or simply omitted; everything else is
// taken as an identifier.
func parseParentID(v any) string {
	switch p := v.(type) {
	case nil:
		return models.RootParentID
	case string:
		if p == "" || p == "0" {
			return models.RootParentID
		}
		return p
	case float64:
		if p == 0 {
			return models.RootParentID
		}
		return strconv.FormatFloat(p, 'f', -1, 64)
	}
	return models.RootParentID
}

func (s *Server) postFiles(c *gin.Context) {
	var req newFileRequest
	_ = c.ShouldBindJSON(&req)

	file, err := s.files.Upload(c.Request.Context(), identityFrom(c), &services.UploadRequest{
		Name:     req.Name,
		Kind:     parseKind(req.Type),
		ParentID: parseParentID(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}

func (s *Server) getFiles(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		s.renderError(c, common.ErrUnauthenticated)
		return
	}

	parentID := parseParentID(c.Query("parentId"))

	// A page that does not parse is page 0, never an error.
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}

	items, err := s.files.ListChildren(c.Request.Context(), identity.ID, parentID, page)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) getFile(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		s.renderError(c, common.ErrUnauthenticated)
		return
	}

	file, err := s.files.GetMetadata(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

func (s *Server) putPublish(public bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFrom(c)
		if identity == nil {
			s.renderError(c, common.ErrUnauthenticated)
			return
		}

		file, err := s.files.SetVisibility(c.Request.Context(), identity, c.Param("id"), public)
		if err != nil {
			s.renderError(c, err)
			return
		}

		c.JSON(http.StatusOK, file)
	}
}

func (s *Server) getFileData(c *gin.Context) {
	// Anonymous callers are allowed here: public files are readable without
	// a session.
	data, mimeType, err := s.files.GetContent(c.Request.Context(), identityFrom(c), c.Param("id"), c.Query("size"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, mimeType, data)
}
