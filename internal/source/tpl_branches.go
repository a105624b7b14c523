// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package source

import "strings"

// coord is a latitude/longitude pair.
type coord struct {
	lat, lng float64
}

// tplBranches maps TPL branch names to coordinates. The events feed only
// carries the branch name, not an address, so locations come from this
// table. Branches missing here produce events with zero coordinates and
// rely on venue enrichment downstream.
var tplBranches = map[string]coord{
	"Agincourt":                               {43.7856, -79.2787},
	"Albion":                                  {43.7372, -79.5496},
	"Albert Campbell":                         {43.7748, -79.2305},
	"Alderwood":                               {43.6032, -79.5479},
	"Annette Street":                          {43.6644, -79.4815},
	"Barbara Frum":                            {43.7284, -79.4127},
	"Beaches":                                 {43.6687, -79.2981},
	"Bendale":                                 {43.7632, -79.2518},
	"Black Creek":                             {43.7566, -79.5234},
	"Bloor/Gladstone":                         {43.6563, -79.4507},
	"Brentwood":                               {43.6829, -79.5734},
	"Bridlewood":                              {43.7729, -79.2824},
	"Broadway":                                {43.7094, -79.3928},
	"Cedarbrae":                               {43.7631, -79.2259},
	"Centennial":                              {43.6431, -79.5360},
	"City Hall":                               {43.6534, -79.3839},
	"Cliffcrest":                              {43.7129, -79.2379},
	"College/Shaw":                            {43.6541, -79.4196},
	"Danforth/Coxwell":                        {43.6868, -79.3218},
	"Davenport":                               {43.6744, -79.4174},
	"Dawes Road":                              {43.6888, -79.2854},
	"Deer Park":                               {43.6880, -79.3955},
	"Dufferin/St. Clair":                      {43.6783, -79.4524},
	"Eatonville":                              {43.6522, -79.5611},
	"Eglinton Square":                         {43.7263, -79.2761},
	"Evelyn Gregory":                          {43.7722, -79.2982},
	"Fairview":                                {43.7363, -79.3471},
	"Flemingdon Park":                         {43.7147, -79.3369},
	"Fort York":                               {43.6391, -79.4030},
	"Gerrard/Ashdale":                         {43.6700, -79.3279},
	"Goldhawk Park":                           {43.7093, -79.5643},
	"Guildwood":                               {43.7555, -79.1972},
	"High Park":                               {43.6544, -79.4657},
	"Highland Creek":                          {43.7820, -79.1767},
	"Humber Bay":                              {43.6249, -79.4815},
	"Humber Summit":                           {43.7551, -79.5781},
	"Jane/Dundas":                             {43.6637, -79.4949},
	"Jane/Sheppard":                           {43.7430, -79.4983},
	"Jones":                                   {43.6643, -79.3443},
	"Kennedy/Eglinton":                        {43.7291, -79.2682},
	"Leaside":                                 {43.7067, -79.3638},
	"Lillian H. Smith":                        {43.6577, -79.4000},
	"Long Branch":                             {43.5943, -79.5478},
	"Main Street":                             {43.6886, -79.3005},
	"Malvern":                                 {43.8078, -79.2288},
	"Maria A. Shchuka":                        {43.7714, -79.2318},
	"Maryvale":                                {43.7617, -79.2761},
	"McGregor Park":                           {43.7151, -79.2998},
	"Merril Collection":                       {43.6577, -79.4000},
	"Mount Dennis":                            {43.6913, -79.4889},
	"Mount Pleasant":                          {43.7071, -79.3889},
	"New Toronto":                             {43.6055, -79.5182},
	"North York Central Library":              {43.7675, -79.4129},
	"Oakwood Village Library and Arts Centre": {43.6822, -79.4350},
	"Palmerston":                              {43.6651, -79.4144},
	"Parkdale":                                {43.6396, -79.4390},
	"Pleasant View":                           {43.7524, -79.4588},
	"Port Union":                              {43.7857, -79.1363},
	"Queen/Saulter":                           {43.6632, -79.3269},
	"Rexdale":                                 {43.7108, -79.5707},
	"Richview":                                {43.6908, -79.5574},
	"Runnymede":                               {43.6526, -79.4787},
	"Sanderson":                               {43.7799, -79.2450},
	"Scarborough Civic Centre":                {43.7739, -79.2576},
	"S. Walter Stewart":                       {43.6930, -79.3546},
	"St. Clair/Silverthorn":                   {43.6857, -79.4682},
	"St. James Town":                          {43.6675, -79.3776},
	"St. Lawrence":                            {43.6497, -79.3689},
	"Steeles":                                 {43.7916, -79.4677},
	"Swansea Memorial":                        {43.6487, -79.4779},
	"Taylor Memorial":                         {43.7777, -79.2269},
	"Thorncliffe":                             {43.7062, -79.3452},
	"Todmorden Room":                          {43.6910, -79.3515},
	"Toronto Reference Library":               {43.6719, -79.3864},
	"Victoria Village":                        {43.7284, -79.3103},
	"Weston":                                  {43.7009, -79.5176},
	"Woodside Square":                         {43.7905, -79.2946},
	"Woodview Park":                           {43.7521, -79.3037},
	"Yorkville":                               {43.6710, -79.3906},
}

// tplBranchCoords resolves a branch name, trying an exact match before a
// case-insensitive substring match in either direction. Returns (0, 0)
// for unknown branches.
func tplBranchCoords(library string) (lat, lng float64) {
	if library == "" {
		return 0, 0
	}
	if c, ok := tplBranches[library]; ok {
		return c.lat, c.lng
	}
	lower := strings.ToLower(library)
	for branch, c := range tplBranches {
		b := strings.ToLower(branch)
		if strings.Contains(lower, b) || strings.Contains(b, lower) {
			return c.lat, c.lng
		}
	}
	return 0, 0
}
