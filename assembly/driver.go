package assembly

import (
	"fmt"
	"sync"

	"github.com/notargets/rotdof/utils"
)

// AssembleAll runs one global assembly pass: the element range is sharded
// across parallelDegree workers with a PartitionMap, each worker owning a
// contiguous bucket of elements and a private term clone for scratch.
// Workers race only at the global matrix, whose block insert is
// serialized, and addition is commutative, so any element order yields
// the same assembled matrix. A worker stops at its first failed element;
// failed elements contribute nothing to the global matrix.
func AssembleAll(term *RotationDofTerm, global utils.DOK, parallelDegree int) (err error) {
	var (
		msh = term.GeometryMesh
		pm  = utils.NewPartitionMap(parallelDegree, msh.K)
		wg  = sync.WaitGroup{}
	)
	if err = term.checkConfigured(); err != nil {
		return
	}
	errs := make([]error, pm.ParallelDegree)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				worker     = term.clone()
				kMin, kMax = pm.GetBucketRange(np)
			)
			for k := kMin; k < kMax; k++ {
				rowMap := msh.DofMap(k, worker.DofPerNode)
				if eErr := worker.AssembleElement(k, global, rowMap, rowMap); eErr != nil {
					errs[np] = fmt.Errorf("element %d: %w", k, eErr)
					return
				}
			}
		}(np)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			err = e
			return
		}
	}
	return
}
