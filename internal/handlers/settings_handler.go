package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// maxAvatarSize bounds avatar uploads to 2 MiB.
const maxAvatarSize = 2 << 20

// SettingsHandler handles settings and avatar requests
type SettingsHandler struct {
	userService services.UserServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(userService services.UserServicer) *SettingsHandler {
	return &SettingsHandler{userService: userService}
}

// UpdateSettings applies the user's settings. The body is an untyped record
// validated by the schema layer.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateSettings(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UploadAvatar replaces the user's avatar with the uploaded file.
func (h *SettingsHandler) UploadAvatar(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file exceeds 2MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrAvatarUploadFailed, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrAvatarUploadFailed, err))
		return
	}

	name, err := h.userService.ReplaceAvatar(userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": name})
}

// GetAvatar serves a stored avatar blob.
func (h *SettingsHandler) GetAvatar(c *gin.Context) {
	avatar, err := h.userService.GetAvatar(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, avatar.ContentType, avatar.Content)
}
