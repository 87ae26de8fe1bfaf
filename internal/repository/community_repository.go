package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/absolutekim/FFYYPP/internal/models"
)

// CommunityRepository handles database operations for posts and comments.
type CommunityRepository struct {
	db *sql.DB
}

// NewCommunityRepository creates a new CommunityRepository.
func NewCommunityRepository(db *sql.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// CreatePost inserts a post and fills in the generated ID.
func (r *CommunityRepository) CreatePost(p *models.Post) error {
	err := r.db.QueryRow(`
		INSERT INTO posts (author_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, p.AuthorID, p.Title, p.Content).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// ListPosts returns all posts, newest first, without comments.
func (r *CommunityRepository) ListPosts() ([]models.Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.author_id, u.username, p.title, p.content, p.created_at
		FROM posts p
		INNER JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Author, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			slog.Error("failed to scan post row", "error", err)
			continue
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a post with its comments, oldest comment first.
func (r *CommunityRepository) GetPost(id int) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRow(`
		SELECT p.id, p.author_id, u.username, p.title, p.content, p.created_at
		FROM posts p
		INNER JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.Author, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	p.Comments = make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Content, &c.CreatedAt); err == nil {
			p.Comments = append(p.Comments, c)
		}
	}
	return &p, rows.Err()
}

// DeletePost removes a post. Comments cascade at the database level.
func (r *CommunityRepository) DeletePost(id int) error {
	res, err := r.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateComment inserts a comment and fills in the generated ID.
func (r *CommunityRepository) CreateComment(c *models.Comment) error {
	err := r.db.QueryRow(`
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PostID, c.AuthorID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetComment returns a single comment.
func (r *CommunityRepository) GetComment(id int) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(`
		SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Content, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComment removes a comment.
func (r *CommunityRepository) DeleteComment(id int) error {
	res, err := r.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
