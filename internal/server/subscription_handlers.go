package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription flips the caller's subscription to a channel.
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	result, err := s.subService.Toggle(requestContext(c), currentUserID(c), channelID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, result, "Subscription toggled successfully")
}

// GetChannelSubscribers lists the users subscribed to a channel.
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	page, limit := parsePageParams(c)
	subs, err := s.subService.ListSubscribers(requestContext(c), channelID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, subs, "Subscribers fetched successfully")
}

// GetSubscribedChannels lists the channels a user subscribes to.
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := s.parseID(c, "subscriberId")
	if err != nil {
		return nil
	}

	page, limit := parsePageParams(c)
	subs, err := s.subService.ListSubscribedChannels(requestContext(c), subscriberID, page, limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, subs, "Subscribed channels fetched successfully")
}
