package ofp

// nonAdmitting is the exact message-type set spec.md §6 calls
// "non-admission-evidencing": HELLO, ERROR, ECHO_REQUEST, ECHO_REPLY,
// VENDOR, FEATURES_REQUEST, FEATURES_REPLY, GET_CONFIG_REQUEST,
// GET_CONFIG_REPLY, SET_CONFIG. Membership is a bitmask test over opcodes
// below MinAdmittingType; kept as a map literal rather than a bitmask
// integer so the set reads as a list, the way spec.md states it.
var nonAdmitting = map[Type]bool{
	TypeHello:            true,
	TypeError:            true,
	TypeEchoRequest:      true,
	TypeEchoReply:        true,
	TypeVendor:           true,
	TypeFeaturesRequest:  true,
	TypeFeaturesReply:    true,
	TypeGetConfigRequest: true,
	TypeGetConfigReply:   true,
	TypeSetConfig:        true,
}

// IsAdmissionEvidencing reports whether receiving a message of type t is
// evidence the peer has admitted this connection for normal service.
// spec.md §9: "The admission classification mask is opcode-specific;
// values of opcode >= 32 always count as admitting. Keep this rule
// literal." So any type >= MinAdmittingType is evidencing unconditionally;
// below that threshold, only types outside the nonAdmitting set count.
func IsAdmissionEvidencing(t Type) bool {
	if t >= MinAdmittingType {
		return true
	}
	return !nonAdmitting[t]
}

// Classify is a convenience wrapper over IsAdmissionEvidencing that takes
// a raw message and handles the too-short-to-have-a-header case the same
// way the teacher's MetaGetStatusFromHeader family handles malformed
// headers: by returning a sentinel "don't know" rather than erroring.
func Classify(m Message) (t Type, evidencing bool, ok bool) {
	ty, err := m.TypeOf()
	if err != nil {
		return 0, false, false
	}
	return ty, IsAdmissionEvidencing(ty), true
}
