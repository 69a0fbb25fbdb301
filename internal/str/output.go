//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type NeighborJSON struct {
	ID   int64   `json:"id"`
	Dist float64 `json:"dist"`
}

type ClusterPointJSON struct {
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Cluster int             `json:"cluster"`
	Data    ClusterDataJSON `json:"data"`
}

type ClusterDataJSON struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NeighborsRequest - POST body of /api/neighbors/:num; a pointer so that "" is accepted but a missing field is not
type NeighborsRequest struct {
	Text *string `json:"text" validate:"required"`
}

// ScoresRequest - POST body of /api/clusters/scores
type ScoresRequest struct {
	Numbers []int `json:"numbers" validate:"required"`
}
