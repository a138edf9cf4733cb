package topology

import (
	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/types"
	"github.com/tidwall/gjson"
)

// decodeLegacy reads the JSON marker written by earlier tooling:
//
//	{"IsClone":true,"ProjectPath":"/work/Proj_Clone1","SourcePath":"/work/Proj",
//	 "Arguments":"client","Clones":[]}
//
// Such markers are converted on their next save.
func decodeLegacy(data []byte) (*types.ProjectRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrMarkerParse, "legacy marker is not valid JSON")
	}
	return legacyRecord(gjson.ParseBytes(data)), nil
}

func legacyRecord(v gjson.Result) *types.ProjectRecord {
	record := &types.ProjectRecord{
		Path:      v.Get("ProjectPath").String(),
		IsClone:   v.Get("IsClone").Bool(),
		Source:    v.Get("SourcePath").String(),
		Arguments: types.DefaultArguments,
	}
	if args := v.Get("Arguments"); args.Exists() {
		record.Arguments = args.String()
	}
	v.Get("Clones").ForEach(func(_, clone gjson.Result) bool {
		if clone.IsObject() {
			record.AddClone(legacyRecord(clone))
		}
		return true
	})
	return record
}
