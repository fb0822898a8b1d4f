package services

import (
	"fmt"
	"sync"
	"testing"

	"threadbox/internal/models"

	"github.com/stretchr/testify/require"
)

func TestReact_StateMachine(t *testing.T) {
	conn := testDB(t)
	comments := NewCommentService(conn)
	svc := NewReactionService(conn)
	author := seedUser(t, conn, "alice")
	voter := seedUser(t, conn, "bob")

	comment, err := comments.Create("judge me", nil, author)
	require.NoError(t, err)

	// neutral -> like
	counts, err := svc.React(comment.ID, voter, models.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, Counts{Likes: 1, Dislikes: 0}, counts)

	// like -> like is a conflict, counters untouched
	_, err = svc.React(comment.ID, voter, models.ReactionLike)
	require.ErrorIs(t, err, ErrAlreadyReacted)
	counts, _, err = svc.Summary(comment.ID, voter)
	require.NoError(t, err)
	require.Equal(t, Counts{Likes: 1, Dislikes: 0}, counts)

	// like -> dislike flips both counters
	counts, err = svc.React(comment.ID, voter, models.ReactionDislike)
	require.NoError(t, err)
	require.Equal(t, Counts{Likes: 0, Dislikes: 1}, counts)

	// dislike -> dislike is a conflict
	_, err = svc.React(comment.ID, voter, models.ReactionDislike)
	require.ErrorIs(t, err, ErrAlreadyReacted)

	// dislike -> like flips back
	counts, err = svc.React(comment.ID, voter, models.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, Counts{Likes: 1, Dislikes: 0}, counts)

	// only one reaction row per (comment, user) throughout
	var rows int64
	require.NoError(t, conn.Model(&models.Reaction{}).
		Where("comment_id = ? AND user_id = ?", comment.ID, voter).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestReact_NeutralDislike(t *testing.T) {
	conn := testDB(t)
	comments := NewCommentService(conn)
	svc := NewReactionService(conn)
	author := seedUser(t, conn, "alice")
	voter := seedUser(t, conn, "bob")

	comment, err := comments.Create("meh", nil, author)
	require.NoError(t, err)

	counts, err := svc.React(comment.ID, voter, models.ReactionDislike)
	require.NoError(t, err)
	require.Equal(t, Counts{Likes: 0, Dislikes: 1}, counts)
}

func TestReact_MissingCommentAndBadStatus(t *testing.T) {
	conn := testDB(t)
	svc := NewReactionService(conn)
	voter := seedUser(t, conn, "bob")

	_, err := svc.React(9999, voter, models.ReactionLike)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.React(1, voter, "meh")
	require.Error(t, err)
}

func TestReact_ManyUsersExactCount(t *testing.T) {
	conn := testDB(t)
	comments := NewCommentService(conn)
	svc := NewReactionService(conn)
	author := seedUser(t, conn, "alice")

	comment, err := comments.Create("popular", nil, author)
	require.NoError(t, err)

	const n = 10
	for i := 0; i < n; i++ {
		voter := seedUser(t, conn, fmt.Sprintf("voter%d", i))
		_, err := svc.React(comment.ID, voter, models.ReactionLike)
		require.NoError(t, err)
	}

	var stored models.Comment
	require.NoError(t, conn.First(&stored, comment.ID).Error)
	require.Equal(t, n, stored.Likes)

	var rows int64
	require.NoError(t, conn.Model(&models.Reaction{}).Where("comment_id = ?", comment.ID).Count(&rows).Error)
	require.EqualValues(t, n, rows)
}

func TestReact_ConcurrentUsersNoLostUpdates(t *testing.T) {
	conn := testDB(t)
	comments := NewCommentService(conn)
	svc := NewReactionService(conn)
	author := seedUser(t, conn, "alice")

	comment, err := comments.Create("viral", nil, author)
	require.NoError(t, err)

	const n = 10
	voters := make([]uint, n)
	for i := range voters {
		voters[i] = seedUser(t, conn, fmt.Sprintf("voter%d", i))
	}

	// All likes fire at once; every transition must land.
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for _, voter := range voters {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := svc.React(comment.ID, userID, models.ReactionLike)
			errs <- err
		}(voter)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var stored models.Comment
	require.NoError(t, conn.First(&stored, comment.ID).Error)
	require.Equal(t, n, stored.Likes)
	require.Zero(t, stored.Dislikes)

	var rows int64
	require.NoError(t, conn.Model(&models.Reaction{}).Where("comment_id = ?", comment.ID).Count(&rows).Error)
	require.EqualValues(t, n, rows)
}

func TestSummary(t *testing.T) {
	conn := testDB(t)
	comments := NewCommentService(conn)
	svc := NewReactionService(conn)
	author := seedUser(t, conn, "alice")
	liker := seedUser(t, conn, "bob")
	bystander := seedUser(t, conn, "carol")

	comment, err := comments.Create("summarize me", nil, author)
	require.NoError(t, err)

	_, err = svc.React(comment.ID, liker, models.ReactionLike)
	require.NoError(t, err)

	t.Run("caller with a reaction sees their status", func(t *testing.T) {
		counts, status, err := svc.Summary(comment.ID, liker)
		require.NoError(t, err)
		require.Equal(t, Counts{Likes: 1, Dislikes: 0}, counts)
		require.NotNil(t, status)
		require.Equal(t, models.ReactionLike, *status)
	})

	t.Run("neutral caller sees nil status", func(t *testing.T) {
		counts, status, err := svc.Summary(comment.ID, bystander)
		require.NoError(t, err)
		require.Equal(t, Counts{Likes: 1, Dislikes: 0}, counts)
		require.Nil(t, status)
	})

	t.Run("missing comment", func(t *testing.T) {
		_, _, err := svc.Summary(9999, liker)
		require.ErrorIs(t, err, ErrNotFound)
	})
}
