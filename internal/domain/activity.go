package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityType identifies the mutation an activity entry records
type ActivityType string

const (
	ActivityBoardCreated   ActivityType = "BOARD_CREATED"
	ActivityBoardUpdated   ActivityType = "BOARD_UPDATED"
	ActivityListCreated    ActivityType = "LIST_CREATED"
	ActivityListUpdated    ActivityType = "LIST_UPDATED"
	ActivityListDeleted    ActivityType = "LIST_DELETED"
	ActivityCardCreated    ActivityType = "CARD_CREATED"
	ActivityCardUpdated    ActivityType = "CARD_UPDATED"
	ActivityCardMoved      ActivityType = "CARD_MOVED"
	ActivityCardDeleted    ActivityType = "CARD_DELETED"
	ActivityCommentCreated ActivityType = "COMMENT_CREATED"
	ActivityCommentUpdated ActivityType = "COMMENT_UPDATED"
	ActivityCommentDeleted ActivityType = "COMMENT_DELETED"
	ActivityMemberAdded    ActivityType = "MEMBER_ADDED"
	ActivityMemberRemoved  ActivityType = "MEMBER_REMOVED"
)

// Activity is an append-only audit log entry for a board mutation.
// Rows are never updated or soft-deleted; old rows are pruned by the
// retention cleanup job.
type Activity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_board_id" json:"boardId"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_user_id" json:"userId"`
	Type      ActivityType   `gorm:"type:varchar(50);not null" json:"type"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time      `gorm:"not null;index:idx_activities_created_at" json:"createdAt"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}
