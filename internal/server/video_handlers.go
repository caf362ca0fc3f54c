package server

import (
	"strconv"

	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PublishVideo uploads a video file and thumbnail and creates the video.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	videoPath, cleanupVideo, err := s.formFilePath(c, "videoFile")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer cleanupVideo()

	thumbPath, cleanupThumb, err := s.formFilePath(c, "thumbnail")
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	defer cleanupThumb()

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	video, err := s.videoService.Publish(requestContext(c), service.PublishVideoInput{
		OwnerID:       currentUserID(c),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Duration:      duration,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// GetVideos lists published videos with search, owner filter and sorting.
func (s *Server) GetVideos(c *fiber.Ctx) error {
	page, limit := parsePageParams(c)
	ownerID := c.QueryInt("userId", 0)
	if ownerID < 0 {
		ownerID = 0
	}

	videos, err := s.videoService.List(requestContext(c), service.ListVideosInput{
		Query:         c.Query("query"),
		OwnerID:       uint(ownerID),
		SortBy:        c.Query("sortBy"),
		SortOrder:     c.Query("sortType"),
		Page:          page,
		Limit:         limit,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, videos, "Videos fetched successfully")
}

// GetVideo returns one video with its computed fields.
func (s *Server) GetVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoService.Get(requestContext(c), id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo edits video details. Accepts JSON or multipart with an
// optional replacement thumbnail.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := service.UpdateVideoInput{
		UserID:  currentUserID(c),
		VideoID: id,
	}

	if form, formErr := c.MultipartForm(); formErr == nil && form != nil {
		in.Title = c.FormValue("title")
		in.Description = c.FormValue("description")
		thumbPath, cleanup, err := s.formFilePath(c, "thumbnail")
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		defer cleanup()
		in.ThumbnailPath = thumbPath
	} else {
		var req updateVideoRequest
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, models.NewBadRequestError("Invalid request body"))
		}
		in.Title = req.Title
		in.Description = req.Description
	}

	video, err := s.videoService.Update(requestContext(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo removes the video and its dependent records.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.Delete(requestContext(c), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish flips the video's publish flag.
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoService.TogglePublish(requestContext(c), id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Publish status toggled successfully")
}
