package board

import "boardhub.org/internal/apperr"

// Operation identifies a board action submitted to the permission engine.
type Operation string

const (
	OpCreateBoard      Operation = "board.create"
	OpReadBoard        Operation = "board.read"
	OpUpdateBoard      Operation = "board.update"
	OpDeleteBoard      Operation = "board.delete"
	OpInviteMember     Operation = "member.invite"
	OpUpdateMemberRole Operation = "member.update_role"
	OpRemoveMember     Operation = "member.remove"
)

var forbiddenByOp = map[Operation]string{
	OpUpdateBoard:      "only owners can update the board",
	OpDeleteBoard:      "only owners can delete the board",
	OpInviteMember:     "only owners can invite members",
	OpUpdateMemberRole: "only owners can update member roles",
	OpRemoveMember:     "only owners can remove members",
}

// Decide is the authorization core: a pure function over the requester's
// resolved role on the target board. It returns nil to allow or a taxonomy
// error to deny. isMember is false when the requester holds no membership,
// in which case role is ignored.
//
// Reads by non-members deny with NotFound so board existence is never
// disclosed outside the membership. Owner-gated mutations deny with
// Forbidden for members and non-members alike.
func Decide(op Operation, role Role, isMember bool) error {
	switch op {
	case OpCreateBoard:
		// Any authenticated identity; it self-grants OWNER.
		return nil
	case OpReadBoard:
		if !isMember {
			return apperr.NotFound("board not found")
		}
		return nil
	case OpUpdateBoard, OpDeleteBoard, OpInviteMember, OpUpdateMemberRole, OpRemoveMember:
		if !isMember || role != RoleOwner {
			return apperr.Forbidden(forbiddenByOp[op])
		}
		return nil
	default:
		return apperr.Forbidden("unknown operation")
	}
}
