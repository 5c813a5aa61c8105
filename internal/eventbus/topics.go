package eventbus

const (
	MatchResultRecordedV1  = "match.result.recorded.v1"
	PredictionBatchSavedV1 = "prediction.batch.saved.v1"
	RoomCreatedV1          = "room.created.v1"
	RoomMemberApprovedV1   = "room.member.approved.v1"
	StandingsRefreshedV1   = "standings.refreshed.v1"
)
