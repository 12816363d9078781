package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 每个聚合都是独立的相关标量子查询，主表行不会被关联表放大

func viewCountOf(videoCol string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = %s)", videoCol)
}

func videoReactionCountOf(videoCol, reaction string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM video_reactions vr WHERE vr.video_id = %s AND vr.type = '%s')", videoCol, reaction)
}

func commentReactionCountOf(commentCol, reaction string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM comment_reactions cr WHERE cr.comment_id = %s AND cr.type = '%s')", commentCol, reaction)
}

func subscriberCountOf(userCol string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM subscriptions s WHERE s.creator_id = %s)", userCol)
}

// viewerIDs 匿名访问时为空集合，gorm 将其渲染为 IN (NULL)，LEFT JOIN 结果恒为空
func viewerIDs(viewer *uuid.UUID) []uuid.UUID {
	if viewer == nil {
		return []uuid.UUID{}
	}
	return []uuid.UUID{*viewer}
}

func viewerVideoReactions(db *gorm.DB, viewer *uuid.UUID) *gorm.DB {
	return db.Table("video_reactions").Select("video_id, type").Where("user_id IN ?", viewerIDs(viewer))
}

func viewerCommentReactions(db *gorm.DB, viewer *uuid.UUID) *gorm.DB {
	return db.Table("comment_reactions").Select("comment_id, type").Where("user_id IN ?", viewerIDs(viewer))
}

func viewerSubscriptions(db *gorm.DB, viewer *uuid.UUID) *gorm.DB {
	return db.Table("subscriptions").Select("creator_id").Where("viewer_id IN ?", viewerIDs(viewer))
}
