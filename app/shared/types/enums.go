package sharedtypes

// Category is the judging category a score belongs to.
type Category string

const (
	CategoryMusic       Category = "music"
	CategoryPerformance Category = "performance"
	CategorySinging     Category = "singing"
)

// Categories lists the scoring categories in display tie-break order.
var Categories = []Category{CategorySinging, CategoryMusic, CategoryPerformance}

func (c Category) Valid() bool {
	switch c {
	case CategoryMusic, CategoryPerformance, CategorySinging:
		return true
	}
	return false
}

// ScoreKind mirrors the kind of panelist that produced a score. Only official
// scores are aggregated into results.
type ScoreKind string

const (
	ScoreKindOfficial  ScoreKind = "official"
	ScoreKindPractice  ScoreKind = "practice"
	ScoreKindComposite ScoreKind = "composite"
)

func (k ScoreKind) Valid() bool {
	switch k {
	case ScoreKindOfficial, ScoreKindPractice, ScoreKindComposite:
		return true
	}
	return false
}

type PanelistKind string

const (
	PanelistKindOfficial PanelistKind = "official"
	PanelistKindPractice PanelistKind = "practice"
	PanelistKindObserver PanelistKind = "observer"
)

func (k PanelistKind) Valid() bool {
	switch k {
	case PanelistKindOfficial, PanelistKindPractice, PanelistKindObserver:
		return true
	}
	return false
}

// ScoreKind returns the kind of score the panelist submits, and false for
// observers who never score.
func (k PanelistKind) ScoreKind() (ScoreKind, bool) {
	switch k {
	case PanelistKindOfficial:
		return ScoreKindOfficial, true
	case PanelistKindPractice:
		return ScoreKindPractice, true
	}
	return "", false
}

type PanelistCategory string

const (
	PanelistCategoryDRCJ        PanelistCategory = "drcj"
	PanelistCategoryCA          PanelistCategory = "ca"
	PanelistCategoryMusic       PanelistCategory = "music"
	PanelistCategoryPerformance PanelistCategory = "performance"
	PanelistCategorySinging     PanelistCategory = "singing"
)

func (c PanelistCategory) Valid() bool {
	switch c {
	case PanelistCategoryDRCJ, PanelistCategoryCA, PanelistCategoryMusic,
		PanelistCategoryPerformance, PanelistCategorySinging:
		return true
	}
	return false
}

// Category maps a panelist category onto the scoring category it judges.
// DRCJ and CA panelists administer the contest and do not score songs.
func (c PanelistCategory) Category() (Category, bool) {
	switch c {
	case PanelistCategoryMusic:
		return CategoryMusic, true
	case PanelistCategoryPerformance:
		return CategoryPerformance, true
	case PanelistCategorySinging:
		return CategorySinging, true
	}
	return "", false
}

type ScoreStatus string

const (
	ScoreStatusNew       ScoreStatus = "new"
	ScoreStatusVerified  ScoreStatus = "verified"
	ScoreStatusCleared   ScoreStatus = "cleared"
	ScoreStatusFlagged   ScoreStatus = "flagged"
	ScoreStatusRevised   ScoreStatus = "revised"
	ScoreStatusConfirmed ScoreStatus = "confirmed"
)

type AppearanceStatus string

const (
	AppearanceStatusNew          AppearanceStatus = "new"
	AppearanceStatusBuilt        AppearanceStatus = "built"
	AppearanceStatusStarted      AppearanceStatus = "started"
	AppearanceStatusFinished     AppearanceStatus = "finished"
	AppearanceStatusVariance     AppearanceStatus = "variance"
	AppearanceStatusVerified     AppearanceStatus = "verified"
	AppearanceStatusAdvanced     AppearanceStatus = "advanced"
	AppearanceStatusDisqualified AppearanceStatus = "disqualified"
	AppearanceStatusScratched    AppearanceStatus = "scratched"
)

// Withdrawn reports whether the appearance left the contest by administrative action.
func (s AppearanceStatus) Withdrawn() bool {
	return s == AppearanceStatusDisqualified || s == AppearanceStatusScratched
}

type RoundStatus string

const (
	RoundStatusNew       RoundStatus = "new"
	RoundStatusDrawn     RoundStatus = "drawn"
	RoundStatusValidated RoundStatus = "validated"
	RoundStatusStarted   RoundStatus = "started"
	RoundStatusFinished  RoundStatus = "finished"
	RoundStatusPublished RoundStatus = "published"
)

type SessionStatus string

const (
	SessionStatusNew       SessionStatus = "new"
	SessionStatusOpened    SessionStatus = "opened"
	SessionStatusClosed    SessionStatus = "closed"
	SessionStatusValidated SessionStatus = "validated"
	SessionStatusStarted   SessionStatus = "started"
	SessionStatusFinished  SessionStatus = "finished"
	SessionStatusPublished SessionStatus = "published"
)

type ConventionStatus string

const (
	ConventionStatusNew      ConventionStatus = "new"
	ConventionStatusListed   ConventionStatus = "listed"
	ConventionStatusOpened   ConventionStatus = "opened"
	ConventionStatusStarted  ConventionStatus = "started"
	ConventionStatusFinished ConventionStatus = "finished"
)

type EntryStatus string

const (
	EntryStatusNew          EntryStatus = "new"
	EntryStatusStarted      EntryStatus = "started"
	EntryStatusFinished     EntryStatus = "finished"
	EntryStatusPublished    EntryStatus = "published"
	EntryStatusScratched    EntryStatus = "scratched"
	EntryStatusDisqualified EntryStatus = "disqualified"
)

// RoundKind numbers count down toward the final, so the kind of round i in a
// session of n rounds is n-i+1.
type RoundKind int

const (
	RoundKindFinal        RoundKind = 1
	RoundKindSemifinal    RoundKind = 2
	RoundKindQuarterfinal RoundKind = 3
)

func (k RoundKind) Valid() bool {
	return k >= RoundKindFinal && k <= RoundKindQuarterfinal
}

func (k RoundKind) String() string {
	switch k {
	case RoundKindFinal:
		return "final"
	case RoundKindSemifinal:
		return "semifinal"
	case RoundKindQuarterfinal:
		return "quarterfinal"
	}
	return "unknown"
}

type SessionKind string

const (
	SessionKindQuartet SessionKind = "quartet"
	SessionKindChorus  SessionKind = "chorus"
	SessionKindVLQ     SessionKind = "vlq"
)

func (k SessionKind) Valid() bool {
	switch k {
	case SessionKindQuartet, SessionKindChorus, SessionKindVLQ:
		return true
	}
	return false
}

type ConventionLevel string

const (
	ConventionLevelInternational ConventionLevel = "international"
	ConventionLevelDistrict      ConventionLevel = "district"
	ConventionLevelDivision      ConventionLevel = "division"
)

func (l ConventionLevel) Valid() bool {
	switch l {
	case ConventionLevelInternational, ConventionLevelDistrict, ConventionLevelDivision:
		return true
	}
	return false
}

type AwardLevel string

const (
	AwardLevelChampionship   AwardLevel = "championship"
	AwardLevelQualifier      AwardLevel = "qualifier"
	AwardLevelRepresentative AwardLevel = "representative"
	AwardLevelDeferred       AwardLevel = "deferred"
	AwardLevelManual         AwardLevel = "manual"
)

func (l AwardLevel) Valid() bool {
	switch l {
	case AwardLevelChampionship, AwardLevelQualifier, AwardLevelRepresentative,
		AwardLevelDeferred, AwardLevelManual:
		return true
	}
	return false
}

// QualificationResult is the published standing of an entry in a qualifying
// or representative contest. Championship entries leave it empty.
type QualificationResult string

const (
	QualificationNone           QualificationResult = ""
	QualificationEligible       QualificationResult = "eligible"
	QualificationIneligible     QualificationResult = "ineligible"
	QualificationQualified      QualificationResult = "qualified"
	QualificationRepresentative QualificationResult = "representative"
)
