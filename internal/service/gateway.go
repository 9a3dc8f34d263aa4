package service

import (
	"context"
	"log/slog"
)

// External collaborators. The service layer only ever sees these interfaces;
// real transports are injected at wiring time.

type NotificationGateway interface {
	Send(ctx context.Context, toAddress string, subject string, body string) error
}

type AttachmentLink struct {
	LinkId     string
	EntityType string
	EntityId   string
	FileId     string
}

type AttachmentGateway interface {
	Attach(ctx context.Context, entityType string, entityId string, fileId string) (*AttachmentLink, error)
	Detach(ctx context.Context, linkId string) error
	List(ctx context.Context, entityType string, entityId string) ([]AttachmentLink, error)
}

type CommitmentGateway interface {
	CreateCommitment(ctx context.Context, packageId string, submissionId string) error
}

// AuditGateway is fire-and-forget: implementations must not fail the calling
// operation.
type AuditGateway interface {
	Record(ctx context.Context, event string, fields map[string]string)
}

type Gateways struct {
	Notification NotificationGateway
	Attachment   AttachmentGateway
	Commitment   CommitmentGateway
	Audit        AuditGateway
}

// slog-backed stand-ins, used until a real transport is wired in.

type LogNotificationGateway struct {
	Logger *slog.Logger
}

func (g *LogNotificationGateway) Send(ctx context.Context, toAddress string, subject string, body string) error {
	g.Logger.InfoContext(ctx, "notification dispatched", "to", toAddress, "subject", subject)

	return nil
}

type LogAttachmentGateway struct {
	Logger *slog.Logger
}

func (g *LogAttachmentGateway) Attach(ctx context.Context, entityType string, entityId string, fileId string) (*AttachmentLink, error) {
	g.Logger.InfoContext(ctx, "attachment linked", "entityType", entityType, "entityId", entityId, "fileId", fileId)

	return &AttachmentLink{EntityType: entityType, EntityId: entityId, FileId: fileId}, nil
}

func (g *LogAttachmentGateway) Detach(ctx context.Context, linkId string) error {
	g.Logger.InfoContext(ctx, "attachment unlinked", "linkId", linkId)

	return nil
}

func (g *LogAttachmentGateway) List(ctx context.Context, entityType string, entityId string) ([]AttachmentLink, error) {
	return []AttachmentLink{}, nil
}

type LogCommitmentGateway struct {
	Logger *slog.Logger
}

func (g *LogCommitmentGateway) CreateCommitment(ctx context.Context, packageId string, submissionId string) error {
	g.Logger.InfoContext(ctx, "commitment requested", "packageId", packageId, "submissionId", submissionId)

	return nil
}

type LogAuditGateway struct {
	Logger *slog.Logger
}

func (g *LogAuditGateway) Record(ctx context.Context, event string, fields map[string]string) {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	g.Logger.InfoContext(ctx, "audit: "+event, args...)
}
