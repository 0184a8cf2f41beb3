package entities

// ChangeRequest is a domain model of an open pull request bumping the image tag.
type ChangeRequest struct {
	Number      int
	HeadSHA     string
	URL         string
	Branch      string
	Environment TargetEnvironment
}

// ReviewState enumerates review verdicts on a change request.
type ReviewState string

// ReviewApproved marks an approving review.
const ReviewApproved ReviewState = "APPROVED"

// Review is a single review left on a change request.
type Review struct {
	State ReviewState
}
