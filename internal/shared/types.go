package shared

// Task types (asynq)
const (
	TypePurgeBlogImages = "blog:purge_images"

	QueueDefault = "default"
	QueueLow     = "low"
)

// PurgeImagesPayload lists object URLs that are no longer referenced by a post.
type PurgeImagesPayload struct {
	BlogID string   `json:"blog_id"`
	URLs   []string `json:"urls"`
	Reason string   `json:"reason"` // deleted, edited
}

// AuthorInfo is the display subset of a profile joined onto posts and comments
// (để tránh import cycle với profile domain)
type AuthorInfo struct {
	FullName *string `json:"full_name"`
	Email    string  `json:"email"`
}
