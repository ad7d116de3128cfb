// Package repositorydao exposes a go-repository-bun repository as a
// dao.RecordStore, so bun backed models can sit behind a daocache.Store.
//
// Models are mapped to records through their json tags. The model must carry
// its identifier under the "id" json key.
package repositorydao
