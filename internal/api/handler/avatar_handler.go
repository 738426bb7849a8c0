package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const avatarField = "avatar"

var avatarExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
}

// AvatarHandler handles avatar uploads and serves profile images.
type AvatarHandler struct {
	service ports.UserService
	files   ports.AvatarStore
}

func NewAvatarHandler(service ports.UserService, files ports.AvatarStore) *AvatarHandler {
	return &AvatarHandler{service: service, files: files}
}

// Upload handles POST /users/:id/avatar.
//
// @Summary      Upload an avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "User id"
// @Param        avatar  formData  file    true  "Image (.png, .jpg, .jpeg, .gif)"
// @Success      200     {object}  avatarResponse
// @Failure      400     {object}  errorResponse
// @Router       /users/{id}/avatar [post]
func (h *AvatarHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(avatarField)
	if err != nil {
		return domain.ValidationFailed("File not found")
	}
	if _, ok := avatarExtensions[strings.ToLower(filepath.Ext(fh.Filename))]; !ok {
		return domain.ValidationFailed("Invalid image format")
	}

	src, err := fh.Open()
	if err != nil {
		return domain.Internal(err)
	}
	defer src.Close()

	user, err := h.service.UpdateAvatar(c.Request().Context(), c.Param("id"), fh.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarResponse{FileName: user.Avatar, OK: true})
}

// ProfileImage handles GET /users/profile-image/:name, falling back to the
// default avatar for unknown names.
//
// @Summary      Serve a profile image
// @Tags         users
// @Produce      image/png
// @Param        name  path  string  true  "Avatar file name"
// @Success      200
// @Router       /users/profile-image/{name} [get]
func (h *AvatarHandler) ProfileImage(c echo.Context) error {
	return c.File(h.files.Path(c.Param("name")))
}
