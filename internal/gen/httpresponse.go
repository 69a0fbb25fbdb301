//    CourseNLPServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// note that JSONPretty is a waste of memory and cycles unless you are debugging and want to be able to
	// inspect the json manually; echo does not escape non-ASCII, so cyrillic goes out as-is
	return c.JSON(http.StatusOK, jsr)
}
