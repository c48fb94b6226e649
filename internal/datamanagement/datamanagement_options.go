package datamanagement

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go-hris-console/internal/audit"
	datamanagementerrors "go-hris-console/internal/datamanagement/errors"

	"go.uber.org/zap"
)

// optionKind describes one editable reference list (departments or
// positions). Both share the same create/update/delete flow and only differ
// in wording and endpoints.
type optionKind struct {
	resource      string
	label         string
	entity        string
	actionCreate  string
	actionUpdate  string
	actionDelete  string
	errNameNeeded error
	errInvalidID  error
}

var (
	departmentKind = optionKind{
		resource:      "departments",
		label:         "แผนก",
		entity:        audit.EntityDepartment,
		actionCreate:  audit.ActionDepartmentCreated,
		actionUpdate:  audit.ActionDepartmentUpdated,
		actionDelete:  audit.ActionDepartmentDeleted,
		errNameNeeded: datamanagementerrors.ErrDepartmentNameRequired,
		errInvalidID:  datamanagementerrors.ErrInvalidDepartmentID,
	}
	positionKind = optionKind{
		resource:      "positions",
		label:         "ตำแหน่ง",
		entity:        audit.EntityPosition,
		actionCreate:  audit.ActionPositionCreated,
		actionUpdate:  audit.ActionPositionUpdated,
		actionDelete:  audit.ActionPositionDeleted,
		errNameNeeded: datamanagementerrors.ErrPositionNameRequired,
		errInvalidID:  datamanagementerrors.ErrInvalidPositionID,
	}
)

func (s *service) CreateDepartment(ctx context.Context, actorID string, req NameRequest) (OptionMutationResponse, error) {
	return s.createOption(ctx, departmentKind, actorID, req, func(name string) (int64, error) {
		d, err := s.repo.CreateDepartment(ctx, name)
		if err != nil || d == nil {
			return 0, err
		}
		return d.ID, nil
	})
}

func (s *service) UpdateDepartment(ctx context.Context, actorID string, id int64, req NameRequest) (OptionMutationResponse, error) {
	return s.updateOption(ctx, departmentKind, actorID, id, req, func(name string) error {
		_, err := s.repo.UpdateDepartment(ctx, id, name)
		return err
	})
}

func (s *service) DeleteDepartment(ctx context.Context, actorID string, id int64) (OptionMutationResponse, error) {
	return s.deleteOption(ctx, departmentKind, actorID, id, func() error {
		return s.repo.DeleteDepartment(ctx, id)
	})
}

func (s *service) CreatePosition(ctx context.Context, actorID string, req NameRequest) (OptionMutationResponse, error) {
	return s.createOption(ctx, positionKind, actorID, req, func(name string) (int64, error) {
		p, err := s.repo.CreatePosition(ctx, name)
		if err != nil || p == nil {
			return 0, err
		}
		return p.ID, nil
	})
}

func (s *service) UpdatePosition(ctx context.Context, actorID string, id int64, req NameRequest) (OptionMutationResponse, error) {
	return s.updateOption(ctx, positionKind, actorID, id, req, func(name string) error {
		_, err := s.repo.UpdatePosition(ctx, id, name)
		return err
	})
}

func (s *service) DeletePosition(ctx context.Context, actorID string, id int64) (OptionMutationResponse, error) {
	return s.deleteOption(ctx, positionKind, actorID, id, func() error {
		return s.repo.DeletePosition(ctx, id)
	})
}

func (s *service) createOption(
	ctx context.Context,
	kind optionKind,
	actorID string,
	req NameRequest,
	create func(name string) (int64, error),
) (OptionMutationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return OptionMutationResponse{}, kind.errNameNeeded
	}

	id, err := create(name)
	if err != nil {
		return OptionMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     kind.actionCreate,
		EntityType: kind.entity,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
		Meta:       map[string]any{"name": name},
	})

	msg := fmt.Sprintf("เพิ่ม%s \"%s\" (ID: %d) เรียบร้อยแล้ว", kind.label, name, id)
	return s.afterOptionMutation(ctx, kind, id, msg), nil
}

func (s *service) updateOption(
	ctx context.Context,
	kind optionKind,
	actorID string,
	id int64,
	req NameRequest,
	update func(name string) error,
) (OptionMutationResponse, error) {
	if id <= 0 {
		return OptionMutationResponse{}, kind.errInvalidID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return OptionMutationResponse{}, kind.errNameNeeded
	}

	if err := update(name); err != nil {
		return OptionMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     kind.actionUpdate,
		EntityType: kind.entity,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
		Meta:       map[string]any{"name": name},
	})

	msg := fmt.Sprintf("อัปเดต%s ID: %d เป็น \"%s\" เรียบร้อยแล้ว", kind.label, id, name)
	return s.afterOptionMutation(ctx, kind, id, msg), nil
}

func (s *service) deleteOption(
	ctx context.Context,
	kind optionKind,
	actorID string,
	id int64,
	remove func() error,
) (OptionMutationResponse, error) {
	if id <= 0 {
		return OptionMutationResponse{}, kind.errInvalidID
	}

	if err := remove(); err != nil {
		return OptionMutationResponse{}, err
	}

	s.audit.Record(ctx, audit.Event{
		Action:     kind.actionDelete,
		EntityType: kind.entity,
		EntityID:   strconv.FormatInt(id, 10),
		ActorID:    actorID,
	})

	return s.afterOptionMutation(ctx, kind, id, fmt.Sprintf("ลบ%sเรียบร้อยแล้ว", kind.label)), nil
}

// afterOptionMutation drops the cached dropdown before re-reading, otherwise
// the refreshed list would come straight back from Redis.
func (s *service) afterOptionMutation(ctx context.Context, kind optionKind, id int64, message string) OptionMutationResponse {
	s.invalidateOptions(ctx, kind.resource)

	resp := OptionMutationResponse{Message: message, ID: id}

	var (
		items []OptionResponse
		err   error
	)
	if kind.resource == departmentKind.resource {
		items, err = s.ListDepartments(ctx)
	} else {
		items, err = s.ListPositions(ctx)
	}
	if err != nil {
		s.log(ctx).Warn("option list refresh after mutation failed",
			zap.String("resource", kind.resource),
			zap.Int64("id", id),
			zap.Error(err),
		)
		resp.RefreshError = err.Error()
		resp.Items = []OptionResponse{}
		return resp
	}

	resp.Items = items
	return resp
}

func (s *service) invalidateOptions(ctx context.Context, resource string) {
	key := GetOptionsKey(resource)
	s.sf.Forget(key)
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log(ctx).Warn("invalidate options cache failed", zap.String("key", key), zap.Error(err))
	}
}
