package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// YouTubeCatalog implements Catalog using the YouTube Data API v3
type YouTubeCatalog struct {
	service *youtube.Service
	logger  *zap.Logger
}

// NewYouTubeCatalog creates a catalog client authenticated with the configured API key
func NewYouTubeCatalog(ctx context.Context, config *domain.CatalogConfig, logger *zap.Logger) (*YouTubeCatalog, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("catalog api key not configured")
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &YouTubeCatalog{
		service: service,
		logger:  logger,
	}, nil
}

// ResolveChannel looks the reference up as a legacy username first and as a
// channel id second. The id lookup is skipped when the username matches.
func (c *YouTubeCatalog) ResolveChannel(ctx context.Context, reference string) (*domain.ChannelInfo, error) {
	info, userErr := c.searchChannel(ctx, reference, true)
	if info != nil {
		return info, nil
	}

	info, idErr := c.searchChannel(ctx, reference, false)
	if info != nil {
		return info, nil
	}

	// A failed request is not proof that the channel is missing.
	if idErr != nil {
		return nil, idErr
	}
	if userErr != nil {
		return nil, userErr
	}
	return nil, domain.ErrChannelNotFound
}

// searchChannel issues one channels.list call. It returns (nil, nil) when the
// catalog has no matching channel.
func (c *YouTubeCatalog) searchChannel(ctx context.Context, reference string, byUsername bool) (*domain.ChannelInfo, error) {
	call := c.service.Channels.List([]string{"contentDetails", "snippet"}).Context(ctx)
	mode := "id"
	if byUsername {
		call = call.ForUsername(reference)
		mode = "username"
	} else {
		call = call.Id(reference)
	}

	resp, err := call.Do()
	if err != nil {
		c.logger.Error("Error when searching channel",
			zap.String("channel", reference),
			zap.String("mode", mode),
			zap.Error(err))
		return nil, &domain.TransportError{Op: "channels.list", Err: err}
	}

	if len(resp.Items) == 0 {
		c.logger.Debug("No channel matched",
			zap.String("channel", reference),
			zap.String("mode", mode))
		return nil, nil
	}

	channel := resp.Items[0]
	info := &domain.ChannelInfo{}
	if channel.Snippet != nil {
		info.Title = channel.Snippet.Title
	}
	if channel.ContentDetails != nil && channel.ContentDetails.RelatedPlaylists != nil {
		info.UploadsListID = channel.ContentDetails.RelatedPlaylists.Uploads
	}
	if info.UploadsListID == "" {
		return nil, fmt.Errorf("channel %q has no uploads playlist", reference)
	}

	return info, nil
}

// ListUploads fetches every page of the upload list. Pages are requested in
// order and any failing page discards the whole listing.
func (c *YouTubeCatalog) ListUploads(ctx context.Context, uploadsListID string) ([]domain.VideoReference, error) {
	videos := []domain.VideoReference{}
	pageToken := ""

	for page := 0; ; page++ {
		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(uploadsListID).
			MaxResults(domain.UploadsPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, c.listingFailed(uploadsListID, page, &domain.TransportError{Op: "playlistItems.list", Err: err})
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.VideoId == "" {
				return nil, c.listingFailed(uploadsListID, page, fmt.Errorf("playlist item %q has no video id", item.Id))
			}
			videos = append(videos, domain.NewVideoReference(item.Snippet.Title, item.Snippet.ResourceId.VideoId))
		}

		c.logger.Debug("Fetched playlist page",
			zap.String("playlist_id", uploadsListID),
			zap.Int("page", page),
			zap.Int("items", len(resp.Items)))

		if resp.NextPageToken == "" {
			return videos, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *YouTubeCatalog) listingFailed(playlistID string, page int, err error) error {
	c.logger.Error("Error when fetching channel playlist",
		zap.String("playlist_id", playlistID),
		zap.Int("page", page),
		zap.Error(err))
	return &domain.ListingError{PlaylistID: playlistID, Page: page, Err: err}
}

var _ domain.Catalog = (*YouTubeCatalog)(nil)
