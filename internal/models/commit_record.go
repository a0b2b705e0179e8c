package models

import "time"

// CommitRecord contains the metadata of a pushed commit
type CommitRecord struct {
	// SHA is the full commit hash
	SHA string
	// AuthorName is the commit author's name
	AuthorName string
	// AuthorEmail is the commit author's email
	AuthorEmail string
	// CommitDate is the author date of the commit
	CommitDate time.Time
	// Message is the commit message (everything after the first blank line of the raw object)
	Message string
}

// NewCommitRecord creates a new CommitRecord without a message
func NewCommitRecord(sha, authorName, authorEmail string, date time.Time) CommitRecord {
	return CommitRecord{
		SHA:         sha,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		CommitDate:  date,
	}
}

// WithMessage sets the message and returns the CommitRecord
func (c CommitRecord) WithMessage(message string) CommitRecord {
	c.Message = message
	return c
}
