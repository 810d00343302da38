package service

import (
	"strconv"

	"github.com/Bayrii/drivelog/util/random"
	"github.com/Bayrii/drivelog/web/session"
)

// Code prefixes for anonymized references.
const (
	PrefixExperience = "EXP"
)

// codeLength is the random part of a minted code, e.g. EXP-3F0A91CC.
const codeLength = 8

// AnonymizerService maintains the session-scoped mapping between internal
// record ids and opaque codes. It only obfuscates sequential ids in URLs;
// it is not an access-control boundary, since every resolved id is still
// checked against the owner at the store.
type AnonymizerService struct{}

// Anonymize returns the code for (prefix, id), minting one on first use.
// Within a session the same pair always yields the same code.
func (s *AnonymizerService) Anonymize(m *session.IDMap, id int, prefix string) string {
	key := internalKey(prefix, id)
	if code, ok := m.Forward[key]; ok {
		return code
	}

	code := mintCode(m, prefix)
	m.Forward[key] = code
	m.Reverse[code] = id
	return code
}

// Resolve looks up a previously minted code. Codes from other sessions, or
// from before a logout, do not resolve.
func (s *AnonymizerService) Resolve(m *session.IDMap, code string) (int, error) {
	id, ok := m.Reverse[code]
	if !ok {
		return 0, ErrInvalidReference
	}
	return id, nil
}

func internalKey(prefix string, id int) string {
	return prefix + "_" + strconv.Itoa(id)
}

func mintCode(m *session.IDMap, prefix string) string {
	for {
		code := prefix + "-" + random.HexSeq(codeLength)
		if _, taken := m.Reverse[code]; !taken {
			return code
		}
	}
}
